package generator

import (
	"fmt"
	"strings"

	"github.com/emicklei/proto"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/schema"
)

// renderEnum emits one enum as an int32-backed named type plus a const
// block, one constant per member in declaration order. Member constants
// keep the protoc-gen-go shape: <EnumGoName>_<MEMBER>.
func renderEnum(se schema.ScopedEnum) (string, error) {
	name := goTypeName(se.FullName())

	var body strings.Builder
	fmt.Fprintf(&body, "// %s is the generated model for enum %s.\n", name, se.FullName())
	fmt.Fprintf(&body, "type %s int32\n", name)

	var consts []string
	for _, element := range se.Enum.Elements {
		switch v := element.(type) {
		case *proto.EnumField:
			consts = append(consts, fmt.Sprintf("\t%s_%s %s = %d", name, v.Name, name, v.Integer))
		case *proto.Comment:
			for _, line := range v.Lines {
				consts = append(consts, "\t//"+line)
			}
		case *proto.Option:
			return "", pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "option %q in enum %q", v.Name, se.FullName())
		case *proto.Reserved:
			return "", pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "reserved in enum %q", se.FullName())
		default:
			return "", pmerrors.Wrapf(pmerrors.ErrUnknownElement, "%T in enum %q", element, se.FullName())
		}
	}

	if len(consts) > 0 {
		body.WriteString("\nconst (\n")
		body.WriteString(strings.Join(consts, "\n"))
		body.WriteString("\n)\n")
	}

	return body.String(), nil
}

// enumMemberNames returns the member constant names of an enum in
// declaration order, used to build value tables in the emitted tests.
func enumMemberNames(se schema.ScopedEnum) []string {
	name := goTypeName(se.FullName())
	var members []string
	for _, element := range se.Enum.Elements {
		if f, ok := element.(*proto.EnumField); ok {
			members = append(members, name+"_"+f.Name)
		}
	}
	return members
}
