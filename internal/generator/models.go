package generator

import (
	"fmt"
	"strings"

	"github.com/emicklei/proto"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/schema"
)

// renderState carries what the per-message renderers need to know about
// the whole file: which messages sit on a required-field cycle (their
// required references get boxed behind a pointer) and which imports the
// emitted source ends up using.
type renderState struct {
	file  *schema.SchemaFile
	boxed map[string]bool

	usesPrimitives bool
	usesProto      bool // encode bodies that call the proto pointer helpers
	usesWire       bool
}

func newRenderState(file *schema.SchemaFile) *renderState {
	return &renderState{
		file:  file,
		boxed: schema.CyclicMessages(file),
	}
}

// modelGoType returns the Go type the model uses for a resolved type
// reference, before cardinality is applied.
func (st *renderState) modelGoType(qt schema.QualifiedType) string {
	if qt.Kind == schema.KindPrimitive {
		st.usesPrimitives = true
		return "primitives." + qt.Name
	}
	return goTypeName(qt.Name)
}

// fieldModelType applies cardinality: repeated becomes a slice, optional
// a pointer, and a required message on a reference cycle is boxed.
func (st *renderState) fieldModelType(msg *schema.Message, field *proto.NormalField) string {
	qt := schema.Resolve(msg, field.Type)
	base := st.modelGoType(qt)
	switch {
	case field.Repeated:
		return "[]" + base
	case field.Optional:
		return "*" + base
	default:
		if qt.Kind == schema.KindMessage && st.boxed[qt.Name] {
			return "*" + base
		}
		return base
	}
}

// unionName returns the tagged-union interface name for a oneof.
func unionName(msg *schema.Message, oneof *proto.Oneof) string {
	return goTypeName(msg.FullName) + "_" + toPascalCase(oneof.Name)
}

// variantName returns the concrete wrapper type name for one oneof member.
func variantName(msg *schema.Message, oneof *proto.Oneof, member *proto.OneOfField) string {
	return unionName(msg, oneof) + toPascalCase(member.Name)
}

// oneofMembers extracts the field members of a oneof; anything else
// inside the block is a schema error, matching the strict posture of the
// adapter. Comments are tolerated and dropped.
func oneofMembers(msg *schema.Message, oneof *proto.Oneof) ([]*proto.OneOfField, error) {
	var members []*proto.OneOfField
	for _, element := range oneof.Elements {
		switch v := element.(type) {
		case *proto.OneOfField:
			members = append(members, v)
		case *proto.Comment:
		default:
			return nil, pmerrors.Wrapf(pmerrors.ErrOneofNonField, "%T in oneof %q of message %q", element, oneof.Name, msg.FullName)
		}
	}
	return members, nil
}

// mapModelTypes resolves a map field into its model key and value types.
// Keys must be integral, bool or string, which the wire format enforces
// and the renderer re-checks.
func (st *renderState) mapModelTypes(msg *schema.Message, mf *proto.MapField) (string, string, error) {
	if !schema.IsMapKeyType(mf.KeyType) {
		return "", "", pmerrors.Wrapf(pmerrors.ErrInvalidMapKey, "map key %q in message %q", mf.KeyType, msg.FullName)
	}
	key, _ := schema.LookupPrimitive(mf.KeyType)
	st.usesPrimitives = true
	value := schema.Resolve(msg, mf.Type)
	return "primitives." + key.Alias, st.modelGoType(value), nil
}

// renderOneofDecls emits the tagged-union interface and its wrapper
// structs for one oneof. The unexported marker method keeps the set of
// implementations closed to this package.
func (st *renderState) renderOneofDecls(msg *schema.Message, oneof *proto.Oneof) (string, error) {
	members, err := oneofMembers(msg, oneof)
	if err != nil {
		return "", err
	}

	union := unionName(msg, oneof)
	var body strings.Builder
	fmt.Fprintf(&body, "// %s is the tagged union for oneof %q of message %s.\n", union, oneof.Name, msg.FullName)
	fmt.Fprintf(&body, "type %s interface {\n\tis%s()\n}\n", union, union)

	for _, member := range members {
		variant := variantName(msg, oneof, member)
		qt := schema.Resolve(msg, member.Type)
		fmt.Fprintf(&body, "\ntype %s struct {\n\t%s %s\n}\n", variant, toPascalCase(member.Name), st.modelGoType(qt))
		fmt.Fprintf(&body, "\nfunc (%s) is%s() {}\n", variant, union)
	}

	return body.String(), nil
}

// renderMessageType emits the model struct for one message, plus the
// union declarations of its oneofs. Struct fields follow declaration
// order; nested message and enum declarations are hoisted out by the
// emission order of the caller and skipped here.
func (st *renderState) renderMessageType(msg *schema.Message) (string, error) {
	name := goTypeName(msg.FullName)

	var unions strings.Builder
	var fields []string
	for _, element := range msg.Elements {
		switch v := element.(type) {
		case *proto.NormalField:
			fields = append(fields, fmt.Sprintf("\t%s %s", toPascalCase(v.Name), st.fieldModelType(msg, v)))
		case *proto.Oneof:
			decls, err := st.renderOneofDecls(msg, v)
			if err != nil {
				return "", err
			}
			unions.WriteString(decls)
			unions.WriteString("\n")
			fields = append(fields, fmt.Sprintf("\t%s %s", toPascalCase(v.Name), unionName(msg, v)))
		case *proto.MapField:
			key, value, err := st.mapModelTypes(msg, v)
			if err != nil {
				return "", err
			}
			fields = append(fields, fmt.Sprintf("\t%s map[%s]%s", toPascalCase(v.Name), key, value))
		case *proto.Comment:
			for _, line := range v.Lines {
				fields = append(fields, "\t//"+line)
			}
		case *schema.Message, *proto.Enum:
			// Hoisted: nested types are emitted as their own declarations.
		case *proto.Option:
			return "", pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "option %q in message %q", v.Name, msg.FullName)
		case *proto.Group:
			return "", pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "group %q in message %q", v.Name, msg.FullName)
		case *proto.Reserved:
			return "", pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "reserved in message %q", msg.FullName)
		case *proto.Extensions:
			return "", pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "extensions in message %q", msg.FullName)
		default:
			return "", pmerrors.Wrapf(pmerrors.ErrUnknownElement, "%T in message %q", element, msg.FullName)
		}
	}

	var body strings.Builder
	body.WriteString(unions.String())
	fmt.Fprintf(&body, "// %s is the generated model for message %s.\n", name, msg.FullName)
	if len(fields) == 0 {
		fmt.Fprintf(&body, "type %s struct{}\n", name)
		return body.String(), nil
	}
	fmt.Fprintf(&body, "type %s struct {\n%s\n}\n", name, strings.Join(fields, "\n"))
	return body.String(), nil
}
