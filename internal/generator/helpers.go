package generator

import (
	"strings"
)

func isASCIILower(c byte) bool { return 'a' <= c && c <= 'z' }

func isASCIIDigit(c byte) bool { return '0' <= c && c <= '9' }

// toPascalCase converts a protobuf identifier to the Go name
// protoc-gen-go derives from it. The rules must match GoCamelCase
// exactly or the codecs reference accessors the wire bindings do not
// declare: an underscore followed by a lowercase letter is dropped, any
// other underscore is kept verbatim, and a leading underscore becomes
// "X" so the name stays exported.
func toPascalCase(s string) string {
	var result strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' && i == 0:
			result.WriteByte('X')
		case c == '_' && i+1 < len(s) && isASCIILower(s[i+1]):
			// Dropped: the next word supplies the capital.
		case isASCIIDigit(c):
			result.WriteByte(c)
		default:
			if isASCIILower(c) {
				c -= 'a' - 'A'
			}
			result.WriteByte(c)
			for ; i+1 < len(s) && isASCIILower(s[i+1]); i++ {
				result.WriteByte(s[i+1])
			}
		}
	}
	return result.String()
}

// goTypeName maps a dot-joined qualified name onto the generated Go type
// name, following the protoc-gen-go convention (Outer.Inner -> Outer_Inner).
func goTypeName(qualified string) string {
	return strings.ReplaceAll(qualified, ".", "_")
}

// lowerFirst uncapitalizes the first byte, for unexported generated names.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// goKeywords are field names that cannot be used as local identifiers in
// generated decode bodies.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// reservedLocals are identifiers the generated decode bodies use for
// parameters and loop variables; field names colliding with them get a
// trailing underscore so the field local cannot shadow them.
var reservedLocals = map[string]bool{
	"pb": true, "m": true, "v": true, "w": true, "r": true,
	"b": true, "e": true, "k": true, "n": true, "i": true,
}

// localName returns a decode-local variable name for a schema field name.
func localName(fieldName string) string {
	name := fieldName
	if goKeywords[name] || reservedLocals[name] {
		name += "_"
	}
	return name
}

// indent prefixes every non-empty line with n tabs.
func indent(s string, n int) string {
	prefix := strings.Repeat("\t", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
