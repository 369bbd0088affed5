package schema

// Scope is a unit of name resolution: a Message or the SchemaFile root.
type Scope interface {
	ScopeName() string
	Enclosing() Scope
	HasLocalEnum(name string) bool
	HasLocalMessage(name string) bool
}

// Kind classifies what a type reference resolved to.
type Kind int

const (
	KindMessage Kind = iota
	KindEnum
	KindPrimitive
	// KindExternal marks the permissive fallthrough: the name resolved to
	// nothing in scope and is assumed to be defined in a sibling schema
	// file. It is passed through unchanged, not an error.
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	case KindPrimitive:
		return "primitive"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// QualifiedType is the result of resolving a type reference. Name is the
// dot-joined qualified name for messages and enums, the scalar-table
// alias for primitives, and the unchanged reference for externals.
type QualifiedType struct {
	Name      string
	Kind      Kind
	Primitive *Primitive // set only for KindPrimitive
}

// Resolve resolves a referenced type name from a scope. The search order
// is strictly innermost-to-outermost, so scope-local definitions shadow
// outer ones; the file's top-level sets come after every message scope
// and the primitive table comes last.
func Resolve(scope Scope, name string) QualifiedType {
	for s := scope; s != nil; s = s.Enclosing() {
		if s.HasLocalEnum(name) {
			return QualifiedType{Name: joinScoped(s.ScopeName(), name), Kind: KindEnum}
		}
		if s.HasLocalMessage(name) {
			return QualifiedType{Name: joinScoped(s.ScopeName(), name), Kind: KindMessage}
		}
	}

	if p, ok := LookupPrimitive(name); ok {
		return QualifiedType{Name: p.Alias, Kind: KindPrimitive, Primitive: p}
	}

	return QualifiedType{Name: name, Kind: KindExternal}
}

func joinScoped(scopeName, name string) string {
	if scopeName == "" {
		return name
	}
	return scopeName + "." + name
}
