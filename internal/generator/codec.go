package generator

import (
	"fmt"
	"strings"

	"github.com/emicklei/proto"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/schema"
)

// The codec renderer synthesizes one Encode and one Decode function per
// message. Encode fills a wire struct from a model value; Decode rebuilds
// the model from the wire struct and is nil-safe so sub-message decodes
// can pass getters straight through. External references are trusted to
// have their own codecs in the same package, the same permissive posture
// the resolver takes.
//
// Presence normalization keeps round trips exact under deep equality:
// required bytes are nil when empty in both directions, optional bytes
// are never nil when present, and slices and maps stay nil when empty.

// wireGoType returns the wirepb-qualified Go type for a non-primitive
// resolved reference.
func wireGoType(qt schema.QualifiedType) string {
	return "wirepb." + goTypeName(qt.Name)
}

// encodeNormalField emits the encode statements for one plain field.
func (st *renderState) encodeNormalField(msg *schema.Message, field *proto.NormalField) (string, error) {
	qt := schema.Resolve(msg, field.Type)
	goField := toPascalCase(field.Name)

	switch qt.Kind {
	case schema.KindPrimitive:
		p := qt.Primitive
		switch {
		case field.Repeated:
			if p.ProtoName == "bytes" {
				return fmt.Sprintf("for _, e := range m.%s {\n\tpb.%s = append(pb.%s, append([]byte(nil), e...))\n}\n", goField, goField, goField), nil
			}
			return fmt.Sprintf("pb.%s = append([]%s(nil), m.%s...)\n", goField, p.GoType, goField), nil
		case field.Optional:
			if p.ProtoName == "bytes" {
				return fmt.Sprintf("if m.%s != nil {\n\tpb.%s = append([]byte{}, *m.%s...)\n}\n", goField, goField, goField), nil
			}
			st.usesProto = true
			return fmt.Sprintf("if m.%s != nil {\n\tpb.%s = %s(*m.%s)\n}\n", goField, goField, p.ProtoHelper, goField), nil
		default:
			if p.ProtoName == "bytes" {
				return fmt.Sprintf("pb.%s = append([]byte(nil), m.%s...)\n", goField, goField), nil
			}
			st.usesProto = true
			return fmt.Sprintf("pb.%s = %s(m.%s)\n", goField, p.ProtoHelper, goField), nil
		}

	case schema.KindEnum:
		wire := wireGoType(qt)
		switch {
		case field.Repeated:
			return fmt.Sprintf("for _, e := range m.%s {\n\tpb.%s = append(pb.%s, %s(e))\n}\n", goField, goField, goField, wire), nil
		case field.Optional:
			return fmt.Sprintf("if m.%s != nil {\n\tpb.%s = %s(*m.%s).Enum()\n}\n", goField, goField, wire, goField), nil
		default:
			return fmt.Sprintf("pb.%s = %s(m.%s).Enum()\n", goField, wire, goField), nil
		}

	default: // message or external
		wire := wireGoType(qt)
		encoder := "Encode" + goTypeName(qt.Name)
		switch {
		case field.Repeated:
			return fmt.Sprintf("for i := range m.%s {\n\tw := new(%s)\n\t%s(w, m.%s[i])\n\tpb.%s = append(pb.%s, w)\n}\n", goField, wire, encoder, goField, goField, goField), nil
		case field.Optional, qt.Kind == schema.KindMessage && st.boxed[qt.Name]:
			return fmt.Sprintf("if m.%s != nil {\n\tw := new(%s)\n\t%s(w, *m.%s)\n\tpb.%s = w\n}\n", goField, wire, encoder, goField, goField), nil
		default:
			return fmt.Sprintf("pb.%s = new(%s)\n%s(pb.%s, m.%s)\n", goField, wire, encoder, goField, goField), nil
		}
	}
}

// encodeOneof emits the type switch translating a model union value into
// the matching wire wrapper struct.
func (st *renderState) encodeOneof(msg *schema.Message, oneof *proto.Oneof) (string, error) {
	members, err := oneofMembers(msg, oneof)
	if err != nil {
		return "", err
	}

	if len(members) == 0 {
		return "", nil
	}

	goField := toPascalCase(oneof.Name)
	wireMsg := "wirepb." + goTypeName(msg.FullName)

	var body strings.Builder
	fmt.Fprintf(&body, "switch v := m.%s.(type) {\n", goField)
	for _, member := range members {
		variant := variantName(msg, oneof, member)
		memberGo := toPascalCase(member.Name)
		wrapper := fmt.Sprintf("%s_%s", wireMsg, memberGo)
		qt := schema.Resolve(msg, member.Type)

		fmt.Fprintf(&body, "case %s:\n", variant)
		switch {
		case qt.Kind == schema.KindPrimitive && qt.Primitive.ProtoName == "bytes":
			fmt.Fprintf(&body, "\tpb.%s = &%s{%s: append([]byte(nil), v.%s...)}\n", goField, wrapper, memberGo, memberGo)
		case qt.Kind == schema.KindPrimitive:
			fmt.Fprintf(&body, "\tpb.%s = &%s{%s: v.%s}\n", goField, wrapper, memberGo, memberGo)
		case qt.Kind == schema.KindEnum:
			fmt.Fprintf(&body, "\tpb.%s = &%s{%s: %s(v.%s)}\n", goField, wrapper, memberGo, wireGoType(qt), memberGo)
		default:
			fmt.Fprintf(&body, "\tw := new(%s)\n", wireGoType(qt))
			fmt.Fprintf(&body, "\tEncode%s(w, v.%s)\n", goTypeName(qt.Name), memberGo)
			fmt.Fprintf(&body, "\tpb.%s = &%s{%s: w}\n", goField, wrapper, memberGo)
		}
	}
	body.WriteString("}\n")
	return body.String(), nil
}

// wireMapValueType returns the value type of the wire-side map for a map
// field: scalars stay bare, enums use the wire enum, messages a pointer.
func wireMapValueType(qt schema.QualifiedType) string {
	switch qt.Kind {
	case schema.KindPrimitive:
		return qt.Primitive.GoType
	case schema.KindEnum:
		return wireGoType(qt)
	default:
		return "*" + wireGoType(qt)
	}
}

// encodeMapField emits the copy loop for one map field. The wire map is
// only materialized when the model map has entries, so empty and absent
// stay indistinguishable across a round trip.
func (st *renderState) encodeMapField(msg *schema.Message, mf *proto.MapField) (string, error) {
	if !schema.IsMapKeyType(mf.KeyType) {
		return "", pmerrors.Wrapf(pmerrors.ErrInvalidMapKey, "map key %q in message %q", mf.KeyType, msg.FullName)
	}
	key, _ := schema.LookupPrimitive(mf.KeyType)
	value := schema.Resolve(msg, mf.Type)
	goField := toPascalCase(mf.Name)
	wireMap := fmt.Sprintf("map[%s]%s", key.GoType, wireMapValueType(value))

	var entry string
	switch {
	case value.Kind == schema.KindPrimitive && value.Primitive.ProtoName == "bytes":
		entry = fmt.Sprintf("\t\tpb.%s[k] = append([]byte(nil), v...)\n", goField)
	case value.Kind == schema.KindPrimitive:
		entry = fmt.Sprintf("\t\tpb.%s[k] = v\n", goField)
	case value.Kind == schema.KindEnum:
		entry = fmt.Sprintf("\t\tpb.%s[k] = %s(v)\n", goField, wireGoType(value))
	default:
		entry = fmt.Sprintf("\t\tw := new(%s)\n\t\tEncode%s(w, v)\n\t\tpb.%s[k] = w\n", wireGoType(value), goTypeName(value.Name), goField)
	}

	return fmt.Sprintf("if len(m.%s) > 0 {\n\tpb.%s = make(%s, len(m.%s))\n\tfor k, v := range m.%s {\n%s\t}\n}\n",
		goField, goField, wireMap, goField, goField, entry), nil
}

// decodeNormalField emits the decode statements for one plain field and
// returns the local variable holding the decoded value.
func (st *renderState) decodeNormalField(msg *schema.Message, field *proto.NormalField) (string, string, error) {
	qt := schema.Resolve(msg, field.Type)
	goField := toPascalCase(field.Name)
	local := localName(field.Name)

	switch qt.Kind {
	case schema.KindPrimitive:
		p := qt.Primitive
		st.usesPrimitives = true
		switch {
		case field.Repeated:
			if p.ProtoName == "bytes" {
				return local, fmt.Sprintf("var %s []primitives.Bytes\nfor _, e := range pb.Get%s() {\n\t%s = append(%s, append(primitives.Bytes(nil), e...))\n}\n", local, goField, local, local), nil
			}
			return local, fmt.Sprintf("%s := append([]primitives.%s(nil), pb.Get%s()...)\n", local, p.Alias, goField), nil
		case field.Optional:
			if p.ProtoName == "bytes" {
				return local, fmt.Sprintf("var %s *primitives.Bytes\nif pb.%s != nil {\n\tb := append(primitives.Bytes{}, pb.%s...)\n\t%s = &b\n}\n", local, goField, goField, local), nil
			}
			return local, fmt.Sprintf("var %s *primitives.%s\nif pb.%s != nil {\n\tv := pb.Get%s()\n\t%s = &v\n}\n", local, p.Alias, goField, goField, local), nil
		default:
			if p.ProtoName == "bytes" {
				return local, fmt.Sprintf("%s := append(primitives.Bytes(nil), pb.Get%s()...)\n", local, goField), nil
			}
			return local, fmt.Sprintf("%s := pb.Get%s()\n", local, goField), nil
		}

	case schema.KindEnum:
		model := goTypeName(qt.Name)
		switch {
		case field.Repeated:
			return local, fmt.Sprintf("var %s []%s\nfor _, e := range pb.Get%s() {\n\t%s = append(%s, %s(e))\n}\n", local, model, goField, local, local, model), nil
		case field.Optional:
			return local, fmt.Sprintf("var %s *%s\nif pb.%s != nil {\n\tv := %s(pb.Get%s())\n\t%s = &v\n}\n", local, model, goField, model, goField, local), nil
		default:
			return local, fmt.Sprintf("%s := %s(pb.Get%s())\n", local, model, goField), nil
		}

	default: // message or external
		model := goTypeName(qt.Name)
		decoder := "Decode" + model
		switch {
		case field.Repeated:
			return local, fmt.Sprintf("var %s []%s\nfor _, e := range pb.Get%s() {\n\t%s = append(%s, %s(e))\n}\n", local, model, goField, local, local, decoder), nil
		case field.Optional, qt.Kind == schema.KindMessage && st.boxed[qt.Name]:
			return local, fmt.Sprintf("var %s *%s\nif pb.%s != nil {\n\tv := %s(pb.%s)\n\t%s = &v\n}\n", local, model, goField, decoder, goField, local), nil
		default:
			return local, fmt.Sprintf("%s := %s(pb.Get%s())\n", local, decoder, goField), nil
		}
	}
}

// decodeOneof emits the wrapper type switch rebuilding the model union
// and returns the local holding it. An unset oneof decodes to nil.
func (st *renderState) decodeOneof(msg *schema.Message, oneof *proto.Oneof) (string, string, error) {
	members, err := oneofMembers(msg, oneof)
	if err != nil {
		return "", "", err
	}

	goField := toPascalCase(oneof.Name)
	local := localName(oneof.Name)
	wireMsg := "wirepb." + goTypeName(msg.FullName)

	var body strings.Builder
	fmt.Fprintf(&body, "var %s %s\n", local, unionName(msg, oneof))
	if len(members) == 0 {
		return local, body.String(), nil
	}
	fmt.Fprintf(&body, "switch v := pb.%s.(type) {\n", goField)
	for _, member := range members {
		variant := variantName(msg, oneof, member)
		memberGo := toPascalCase(member.Name)
		qt := schema.Resolve(msg, member.Type)

		fmt.Fprintf(&body, "case *%s_%s:\n", wireMsg, memberGo)
		switch {
		case qt.Kind == schema.KindPrimitive && qt.Primitive.ProtoName == "bytes":
			st.usesPrimitives = true
			fmt.Fprintf(&body, "\t%s = %s{%s: append(primitives.Bytes(nil), v.%s...)}\n", local, variant, memberGo, memberGo)
		case qt.Kind == schema.KindPrimitive:
			fmt.Fprintf(&body, "\t%s = %s{%s: v.%s}\n", local, variant, memberGo, memberGo)
		case qt.Kind == schema.KindEnum:
			fmt.Fprintf(&body, "\t%s = %s{%s: %s(v.%s)}\n", local, variant, memberGo, goTypeName(qt.Name), memberGo)
		default:
			fmt.Fprintf(&body, "\t%s = %s{%s: Decode%s(v.%s)}\n", local, variant, memberGo, goTypeName(qt.Name), memberGo)
		}
	}
	body.WriteString("}\n")
	return local, body.String(), nil
}

// decodeMapField emits the copy loop rebuilding one model map and
// returns the local holding it. The map stays nil when the wire side is
// empty or absent.
func (st *renderState) decodeMapField(msg *schema.Message, mf *proto.MapField) (string, string, error) {
	if !schema.IsMapKeyType(mf.KeyType) {
		return "", "", pmerrors.Wrapf(pmerrors.ErrInvalidMapKey, "map key %q in message %q", mf.KeyType, msg.FullName)
	}
	key, _ := schema.LookupPrimitive(mf.KeyType)
	value := schema.Resolve(msg, mf.Type)
	goField := toPascalCase(mf.Name)
	local := localName(mf.Name)
	st.usesPrimitives = true

	var valueType, entry string
	switch {
	case value.Kind == schema.KindPrimitive && value.Primitive.ProtoName == "bytes":
		valueType = "primitives.Bytes"
		entry = fmt.Sprintf("\t\t%s[k] = append(primitives.Bytes(nil), v...)\n", local)
	case value.Kind == schema.KindPrimitive:
		valueType = "primitives." + value.Primitive.Alias
		entry = fmt.Sprintf("\t\t%s[k] = v\n", local)
	case value.Kind == schema.KindEnum:
		valueType = goTypeName(value.Name)
		entry = fmt.Sprintf("\t\t%s[k] = %s(v)\n", local, valueType)
	default:
		valueType = goTypeName(value.Name)
		entry = fmt.Sprintf("\t\t%s[k] = Decode%s(v)\n", local, valueType)
	}

	mapType := fmt.Sprintf("map[primitives.%s]%s", key.Alias, valueType)
	body := fmt.Sprintf("var %s %s\nif len(pb.Get%s()) > 0 {\n\t%s = make(%s, len(pb.Get%s()))\n\tfor k, v := range pb.Get%s() {\n%s\t}\n}\n",
		local, mapType, goField, local, mapType, goField, goField, entry)
	return local, body, nil
}

// renderCodecs emits the Encode and Decode pair for one message.
func (st *renderState) renderCodecs(msg *schema.Message) (string, error) {
	st.usesWire = true
	name := goTypeName(msg.FullName)

	var encodeBody strings.Builder
	var decodeBody strings.Builder
	type ctorField struct {
		goName string
		local  string
	}
	var ctor []ctorField

	for _, element := range msg.Elements {
		switch v := element.(type) {
		case *proto.NormalField:
			enc, err := st.encodeNormalField(msg, v)
			if err != nil {
				return "", err
			}
			encodeBody.WriteString(enc)
			local, dec, err := st.decodeNormalField(msg, v)
			if err != nil {
				return "", err
			}
			decodeBody.WriteString(dec)
			ctor = append(ctor, ctorField{toPascalCase(v.Name), local})
		case *proto.Oneof:
			enc, err := st.encodeOneof(msg, v)
			if err != nil {
				return "", err
			}
			encodeBody.WriteString(enc)
			local, dec, err := st.decodeOneof(msg, v)
			if err != nil {
				return "", err
			}
			decodeBody.WriteString(dec)
			ctor = append(ctor, ctorField{toPascalCase(v.Name), local})
		case *proto.MapField:
			enc, err := st.encodeMapField(msg, v)
			if err != nil {
				return "", err
			}
			encodeBody.WriteString(enc)
			local, dec, err := st.decodeMapField(msg, v)
			if err != nil {
				return "", err
			}
			decodeBody.WriteString(dec)
			ctor = append(ctor, ctorField{toPascalCase(v.Name), local})
		case *proto.Comment, *schema.Message, *proto.Enum:
			// Comments and hoisted nested declarations contribute nothing
			// to the codec bodies.
		default:
			return "", pmerrors.Wrapf(pmerrors.ErrUnexpectedElement, "%T in message %q", element, msg.FullName)
		}
	}

	var body strings.Builder
	fmt.Fprintf(&body, "// Encode%s fills a wire %s from a model value.\n", name, msg.FullName)
	fmt.Fprintf(&body, "func Encode%s(pb *wirepb.%s, m %s) {\n", name, name, name)
	body.WriteString(indent(strings.TrimRight(encodeBody.String(), "\n"), 1))
	if encodeBody.Len() > 0 {
		body.WriteString("\n")
	}
	body.WriteString("}\n\n")

	fmt.Fprintf(&body, "// Decode%s rebuilds the model from a wire %s. A nil wire value\n", name, msg.FullName)
	fmt.Fprintf(&body, "// decodes to the zero model.\n")
	fmt.Fprintf(&body, "func Decode%s(pb *wirepb.%s) %s {\n", name, name, name)
	fmt.Fprintf(&body, "\tif pb == nil {\n\t\treturn %s{}\n\t}\n", name)
	if decodeBody.Len() > 0 {
		body.WriteString(indent(strings.TrimRight(decodeBody.String(), "\n"), 1))
		body.WriteString("\n")
	}
	if len(ctor) == 0 {
		fmt.Fprintf(&body, "\treturn %s{}\n}\n", name)
		return body.String(), nil
	}
	fmt.Fprintf(&body, "\treturn %s{\n", name)
	for _, f := range ctor {
		fmt.Fprintf(&body, "\t\t%s: %s,\n", f.goName, f.local)
	}
	body.WriteString("\t}\n}\n")
	return body.String(), nil
}
