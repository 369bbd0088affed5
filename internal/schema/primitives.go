package schema

// Primitive describes one entry of the scalar-type table: how a protobuf
// scalar maps onto the generated primitive-support package. Alias is the
// type name inside that package, GoType its underlying Go type.
type Primitive struct {
	ProtoName   string
	Alias       string
	GoType      string
	ProtoHelper string // pointer helper from google.golang.org/protobuf/proto; "" when the wire field is not a pointer
	RandFunc    string // generator in the emitted primitive-support package
	MapKey      bool   // allowed as a map key
	Bits        int
	Signed      bool
	Float       bool
}

// primitiveList is in emission order for the generated primitives module.
var primitiveList = []*Primitive{
	{ProtoName: "double", Alias: "Double", GoType: "float64", ProtoHelper: "proto.Float64", RandFunc: "RandDouble", Bits: 64, Signed: true, Float: true},
	{ProtoName: "float", Alias: "Float", GoType: "float32", ProtoHelper: "proto.Float32", RandFunc: "RandFloat", Bits: 32, Signed: true, Float: true},
	{ProtoName: "int32", Alias: "Int32", GoType: "int32", ProtoHelper: "proto.Int32", RandFunc: "RandInt32", MapKey: true, Bits: 32, Signed: true},
	{ProtoName: "int64", Alias: "Int64", GoType: "int64", ProtoHelper: "proto.Int64", RandFunc: "RandInt64", MapKey: true, Bits: 64, Signed: true},
	{ProtoName: "uint32", Alias: "UInt32", GoType: "uint32", ProtoHelper: "proto.Uint32", RandFunc: "RandUInt32", MapKey: true, Bits: 32},
	{ProtoName: "uint64", Alias: "UInt64", GoType: "uint64", ProtoHelper: "proto.Uint64", RandFunc: "RandUInt64", MapKey: true, Bits: 64},
	{ProtoName: "sint32", Alias: "SInt32", GoType: "int32", ProtoHelper: "proto.Int32", RandFunc: "RandSInt32", MapKey: true, Bits: 32, Signed: true},
	{ProtoName: "sint64", Alias: "SInt64", GoType: "int64", ProtoHelper: "proto.Int64", RandFunc: "RandSInt64", MapKey: true, Bits: 64, Signed: true},
	{ProtoName: "fixed32", Alias: "Fixed32", GoType: "uint32", ProtoHelper: "proto.Uint32", RandFunc: "RandFixed32", MapKey: true, Bits: 32},
	{ProtoName: "fixed64", Alias: "Fixed64", GoType: "uint64", ProtoHelper: "proto.Uint64", RandFunc: "RandFixed64", MapKey: true, Bits: 64},
	{ProtoName: "sfixed32", Alias: "SFixed32", GoType: "int32", ProtoHelper: "proto.Int32", RandFunc: "RandSFixed32", MapKey: true, Bits: 32, Signed: true},
	{ProtoName: "sfixed64", Alias: "SFixed64", GoType: "int64", ProtoHelper: "proto.Int64", RandFunc: "RandSFixed64", MapKey: true, Bits: 64, Signed: true},
	{ProtoName: "bool", Alias: "Bool", GoType: "bool", ProtoHelper: "proto.Bool", RandFunc: "RandBool", MapKey: true, Bits: 1},
	{ProtoName: "string", Alias: "String", GoType: "string", ProtoHelper: "proto.String", RandFunc: "RandString", MapKey: true},
	{ProtoName: "bytes", Alias: "Bytes", GoType: "[]byte", RandFunc: "RandBytes"},
}

var primitivesByName = func() map[string]*Primitive {
	m := make(map[string]*Primitive, len(primitiveList))
	for _, p := range primitiveList {
		m[p.ProtoName] = p
	}
	return m
}()

// LookupPrimitive returns the scalar-table entry for a proto type name.
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := primitivesByName[name]
	return p, ok
}

// PrimitiveTypes returns the scalar table in stable emission order.
func PrimitiveTypes() []*Primitive {
	return primitiveList
}

// IsMapKeyType reports whether a proto type name may key a map field.
// The wire format forbids floating point, bytes and non-scalar keys.
func IsMapKeyType(name string) bool {
	p, ok := primitivesByName[name]
	return ok && p.MapKey
}
