package generator

import (
	"fmt"
	"strings"

	"github.com/emicklei/proto"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/schema"
)

// The strategy renderer emits the companion test module: one value table
// per enum, one random generator per message, and one round-trip property
// test per message driven by testing/quick. Generators draw from the
// emitted primitives package and respect the same presence normalization
// the codecs preserve, so reflect.DeepEqual is an exact equality.

type strategyState struct {
	file  *schema.SchemaFile
	pkg   string // model package qualifier inside the test file
	boxed map[string]bool

	usesPrimitives bool
}

func newStrategyState(file *schema.SchemaFile, modelPackage string, boxed map[string]bool) *strategyState {
	return &strategyState{file: file, pkg: modelPackage, boxed: boxed}
}

// randFuncName returns the generator name for a message reference.
func randFuncName(qualified string) string {
	return "rand" + goTypeName(qualified)
}

// enumValuesVar returns the name of the per-enum value table.
func enumValuesVar(qualified string) string {
	return lowerFirst(goTypeName(qualified)) + "Values"
}

// renderEnumValues emits the value table one enum contributes.
func (st *strategyState) renderEnumValues(se schema.ScopedEnum) string {
	name := goTypeName(se.FullName())
	members := enumMemberNames(se)
	if len(members) == 0 {
		return ""
	}
	var body strings.Builder
	fmt.Fprintf(&body, "var %s = []%s.%s{\n", enumValuesVar(se.FullName()), st.pkg, name)
	for _, member := range members {
		fmt.Fprintf(&body, "\t%s.%s,\n", st.pkg, member)
	}
	body.WriteString("}\n")
	return body.String()
}

// valueExpr returns the expression generating one random value of a
// resolved type. Enum draws index into the enum's value table.
func (st *strategyState) valueExpr(qt schema.QualifiedType) string {
	switch qt.Kind {
	case schema.KindPrimitive:
		st.usesPrimitives = true
		return fmt.Sprintf("primitives.%s(r)", qt.Primitive.RandFunc)
	case schema.KindEnum:
		values := enumValuesVar(qt.Name)
		return fmt.Sprintf("%s[r.Intn(len(%s))]", values, values)
	default:
		return randFuncName(qt.Name) + "(r)"
	}
}

// strategyNormalField emits the statements filling one plain field of m.
func (st *strategyState) strategyNormalField(msg *schema.Message, field *proto.NormalField) string {
	qt := schema.Resolve(msg, field.Type)
	goField := toPascalCase(field.Name)
	expr := st.valueExpr(qt)

	switch {
	case field.Repeated:
		return fmt.Sprintf("for n := r.Intn(3); n > 0; n-- {\n\tm.%s = append(m.%s, %s)\n}\n", goField, goField, expr)
	case field.Optional, qt.Kind == schema.KindMessage && st.boxed[qt.Name]:
		// Boxed required references share the optional shape; the coin
		// flip also bounds recursive generation. Present bytes are
		// normalized to non-nil, matching what a decode produces.
		if qt.Kind == schema.KindPrimitive && qt.Primitive.ProtoName == "bytes" {
			expr = fmt.Sprintf("append(primitives.Bytes{}, %s...)", expr)
		}
		return fmt.Sprintf("if r.Intn(2) == 0 {\n\tv := %s\n\tm.%s = &v\n}\n", expr, goField)
	default:
		return fmt.Sprintf("m.%s = %s\n", goField, expr)
	}
}

// strategyOneof emits the switch choosing one member or leaving the
// union absent.
func (st *strategyState) strategyOneof(msg *schema.Message, oneof *proto.Oneof) (string, error) {
	members, err := oneofMembers(msg, oneof)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", nil
	}

	goField := toPascalCase(oneof.Name)
	var body strings.Builder
	fmt.Fprintf(&body, "switch r.Intn(%d) {\n", len(members)+1)
	for i, member := range members {
		qt := schema.Resolve(msg, member.Type)
		fmt.Fprintf(&body, "case %d:\n", i)
		fmt.Fprintf(&body, "\tm.%s = %s.%s{%s: %s}\n",
			goField, st.pkg, variantName(msg, oneof, member), toPascalCase(member.Name), st.valueExpr(qt))
	}
	body.WriteString("}\n")
	return body.String(), nil
}

// strategyMapField emits the statements filling one map field of m.
func (st *strategyState) strategyMapField(msg *schema.Message, mf *proto.MapField) (string, error) {
	if !schema.IsMapKeyType(mf.KeyType) {
		return "", pmerrors.Wrapf(pmerrors.ErrInvalidMapKey, "map key %q in message %q", mf.KeyType, msg.FullName)
	}
	key, _ := schema.LookupPrimitive(mf.KeyType)
	value := schema.Resolve(msg, mf.Type)
	goField := toPascalCase(mf.Name)
	st.usesPrimitives = true

	valueType := st.mapValueModelType(value)
	return fmt.Sprintf("if n := r.Intn(3); n > 0 {\n\tm.%s = make(map[primitives.%s]%s, n)\n\tfor ; n > 0; n-- {\n\t\tm.%s[primitives.%s(r)] = %s\n\t}\n}\n",
		goField, key.Alias, valueType, goField, key.RandFunc, st.valueExpr(value)), nil
}

// mapValueModelType mirrors the model renderer's map value type, but
// qualified for use from the external test package.
func (st *strategyState) mapValueModelType(qt schema.QualifiedType) string {
	if qt.Kind == schema.KindPrimitive {
		st.usesPrimitives = true
		return "primitives." + qt.Primitive.Alias
	}
	return st.pkg + "." + goTypeName(qt.Name)
}

// renderStrategy emits the random generator for one message.
func (st *strategyState) renderStrategy(msg *schema.Message) (string, error) {
	name := goTypeName(msg.FullName)

	var stmts strings.Builder
	for _, element := range msg.Elements {
		switch v := element.(type) {
		case *proto.NormalField:
			stmts.WriteString(st.strategyNormalField(msg, v))
		case *proto.Oneof:
			s, err := st.strategyOneof(msg, v)
			if err != nil {
				return "", err
			}
			stmts.WriteString(s)
		case *proto.MapField:
			s, err := st.strategyMapField(msg, v)
			if err != nil {
				return "", err
			}
			stmts.WriteString(s)
		case *proto.Comment, *schema.Message, *proto.Enum:
		default:
			return "", pmerrors.Wrapf(pmerrors.ErrUnexpectedElement, "%T in message %q", element, msg.FullName)
		}
	}

	var body strings.Builder
	fmt.Fprintf(&body, "func %s(r *rand.Rand) %s.%s {\n", randFuncName(msg.FullName), st.pkg, name)
	fmt.Fprintf(&body, "\tvar m %s.%s\n", st.pkg, name)
	if stmts.Len() > 0 {
		body.WriteString(indent(strings.TrimRight(stmts.String(), "\n"), 1))
		body.WriteString("\n")
	}
	body.WriteString("\treturn m\n}\n")
	return body.String(), nil
}

// renderRoundTripTest emits the quick.Check property for one message.
func (st *strategyState) renderRoundTripTest(msg *schema.Message) string {
	name := goTypeName(msg.FullName)
	var body strings.Builder
	fmt.Fprintf(&body, "func Test%sRoundTrip(t *testing.T) {\n", name)
	body.WriteString("\tcfg := &quick.Config{\n")
	body.WriteString("\t\tValues: func(args []reflect.Value, r *rand.Rand) {\n")
	fmt.Fprintf(&body, "\t\t\targs[0] = reflect.ValueOf(%s(r))\n", randFuncName(msg.FullName))
	body.WriteString("\t\t},\n\t}\n")
	fmt.Fprintf(&body, "\tcheck := func(m %s.%s) bool {\n", st.pkg, name)
	fmt.Fprintf(&body, "\t\tpb := new(wirepb.%s)\n", name)
	fmt.Fprintf(&body, "\t\t%s.Encode%s(pb, m)\n", st.pkg, name)
	fmt.Fprintf(&body, "\t\treturn reflect.DeepEqual(%s.Decode%s(pb), m)\n", st.pkg, name)
	body.WriteString("\t}\n")
	body.WriteString("\tif err := quick.Check(check, cfg); err != nil {\n\t\tt.Fatal(err)\n\t}\n}\n")
	return body.String()
}

// renderTestModule emits the whole companion test file for one schema.
// Returns "" when the schema declares no messages.
func renderTestModule(file *schema.SchemaFile, modelPackage string, boxed map[string]bool, imports testImports) (string, error) {
	messages := file.AllMessages()
	if len(messages) == 0 {
		return "", nil
	}

	st := newStrategyState(file, modelPackage, boxed)

	var chunks []string
	for _, se := range file.AllEnums() {
		if table := st.renderEnumValues(se); table != "" {
			chunks = append(chunks, table)
		}
	}
	for _, msg := range messages {
		strategy, err := st.renderStrategy(msg)
		if err != nil {
			return "", err
		}
		chunks = append(chunks, strategy)
	}
	for _, msg := range messages {
		chunks = append(chunks, st.renderRoundTripTest(msg))
	}

	importLines := []string{
		`"math/rand"`,
		`"reflect"`,
		`"testing"`,
		`"testing/quick"`,
		"",
		fmt.Sprintf("%s %q", modelPackage, imports.Models),
		fmt.Sprintf("wirepb %q", imports.Wire),
	}
	if st.usesPrimitives {
		importLines = append(importLines, fmt.Sprintf("primitives %q", imports.Primitives))
	}

	header, err := executeTemplate("tests_header.tmpl", headerData{
		Schema:  file.Filename,
		Package: modelPackage + "_test",
		Imports: importLines,
	})
	if err != nil {
		return "", err
	}

	return header + "\n" + strings.Join(chunks, "\n"), nil
}

// testImports carries the import paths the emitted test file needs.
type testImports struct {
	Models     string
	Wire       string
	Primitives string
}
