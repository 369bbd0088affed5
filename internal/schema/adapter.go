// Package schema wraps the parsed .proto AST into a scope tree with
// parent and file back-references, and resolves type names against it.
package schema

import (
	"io"
	"os"

	"github.com/emicklei/proto"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

// SchemaFile is the root scope of one compiled schema. It owns the whole
// Message tree; Message.File points back at it.
type SchemaFile struct {
	Filename string
	Syntax   string
	Package  string

	// Elements preserves file-level declaration order. Entries are either
	// raw AST nodes or *Message for adapted messages.
	Elements []interface{}

	Imports  []*proto.Import
	Options  []*proto.Option
	Services []*proto.Service
	Comments []*proto.Comment
	Messages []*Message
	Enums    []*proto.Enum

	enumNames    map[string]struct{}
	messageNames map[string]struct{}
}

// Message is one adapted message scope. Parent is nil for top-level
// messages; File always points at the owning SchemaFile. Both are
// back-references only, the tree is owned root-down.
type Message struct {
	File   *SchemaFile
	Parent *Message

	Name     string
	FullName string // dot-joined path from the file root, e.g. "Outer.Inner"

	// Elements preserves in-message declaration order. Entries are raw AST
	// nodes except nested messages, which appear as *Message.
	Elements []interface{}

	Comments  []*proto.Comment
	Fields    []*proto.NormalField
	Oneofs    []*proto.Oneof
	MapFields []*proto.MapField
	Messages  []*Message
	Enums     []*proto.Enum
	Options   []*proto.Option
	Reserved  []*proto.Reserved
	Groups    []*proto.Group

	enumNames    map[string]struct{}
	messageNames map[string]struct{}
}

// ParseFile parses a .proto file and adapts it into a SchemaFile.
func ParseFile(path string) (*SchemaFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pmerrors.Wrap(pmerrors.ErrSchemaNotFound, err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse parses .proto text and adapts it into a SchemaFile.
func Parse(r io.Reader, filename string) (*SchemaFile, error) {
	parser := proto.NewParser(r)
	parser.Filename(filename)
	def, err := parser.Parse()
	if err != nil {
		return nil, pmerrors.Wrap(pmerrors.ErrSchema, err)
	}
	return Adapt(def)
}

// Adapt wraps a parsed AST into the scope tree. Back-references and the
// per-scope name sets are filled in a single top-down pass; an AST node
// kind the adapter does not recognize is a fatal schema error.
func Adapt(def *proto.Proto) (*SchemaFile, error) {
	file := &SchemaFile{
		Filename:     def.Filename,
		enumNames:    make(map[string]struct{}),
		messageNames: make(map[string]struct{}),
	}

	for _, element := range def.Elements {
		switch v := element.(type) {
		case *proto.Syntax:
			file.Syntax = v.Value
			file.Elements = append(file.Elements, v)
		case *proto.Package:
			file.Package = v.Name
			file.Elements = append(file.Elements, v)
		case *proto.Import:
			file.Imports = append(file.Imports, v)
			file.Elements = append(file.Elements, v)
		case *proto.Option:
			file.Options = append(file.Options, v)
			file.Elements = append(file.Elements, v)
		case *proto.Service:
			file.Services = append(file.Services, v)
			file.Elements = append(file.Elements, v)
		case *proto.Comment:
			file.Comments = append(file.Comments, v)
			file.Elements = append(file.Elements, v)
		case *proto.Enum:
			file.Enums = append(file.Enums, v)
			file.enumNames[v.Name] = struct{}{}
			file.Elements = append(file.Elements, v)
		case *proto.Message:
			if v.IsExtend {
				return nil, pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "extend %q", v.Name)
			}
			msg, err := adaptMessage(v, "")
			if err != nil {
				return nil, err
			}
			file.Messages = append(file.Messages, msg)
			file.messageNames[v.Name] = struct{}{}
			file.Elements = append(file.Elements, msg)
		default:
			return nil, pmerrors.Wrapf(pmerrors.ErrUnknownElement, "%T at file scope", element)
		}
	}

	for _, msg := range file.Messages {
		linkScopes(msg, file, nil)
	}

	return file, nil
}

// adaptMessage converts one *proto.Message, recursing into nested
// messages. parentPrefix is the dotted path of the enclosing scope,
// including a trailing dot when non-empty.
func adaptMessage(message *proto.Message, parentPrefix string) (*Message, error) {
	msg := &Message{
		Name:         message.Name,
		FullName:     parentPrefix + message.Name,
		enumNames:    make(map[string]struct{}),
		messageNames: make(map[string]struct{}),
	}

	for _, element := range message.Elements {
		switch v := element.(type) {
		case *proto.Comment:
			msg.Comments = append(msg.Comments, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.NormalField:
			msg.Fields = append(msg.Fields, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.Oneof:
			msg.Oneofs = append(msg.Oneofs, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.MapField:
			msg.MapFields = append(msg.MapFields, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.Enum:
			msg.Enums = append(msg.Enums, v)
			msg.enumNames[v.Name] = struct{}{}
			msg.Elements = append(msg.Elements, v)
		case *proto.Message:
			if v.IsExtend {
				return nil, pmerrors.Wrapf(pmerrors.ErrUnsupportedElement, "extend %q in message %q", v.Name, msg.FullName)
			}
			nested, err := adaptMessage(v, msg.FullName+".")
			if err != nil {
				return nil, err
			}
			msg.Messages = append(msg.Messages, nested)
			msg.messageNames[v.Name] = struct{}{}
			msg.Elements = append(msg.Elements, nested)
		case *proto.Option:
			msg.Options = append(msg.Options, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.Reserved:
			msg.Reserved = append(msg.Reserved, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.Group:
			msg.Groups = append(msg.Groups, v)
			msg.Elements = append(msg.Elements, v)
		case *proto.Extensions:
			msg.Elements = append(msg.Elements, v)
		default:
			return nil, pmerrors.Wrapf(pmerrors.ErrUnknownElement, "%T in message %q", element, msg.FullName)
		}
	}

	return msg, nil
}

// linkScopes sets the non-owning back-references, top-down. A nested
// message's parent is set immediately after its owner.
func linkScopes(msg *Message, file *SchemaFile, parent *Message) {
	msg.File = file
	msg.Parent = parent
	for _, nested := range msg.Messages {
		linkScopes(nested, file, msg)
	}
}

// HasLocalEnum reports whether name is an enum declared directly in the file.
func (f *SchemaFile) HasLocalEnum(name string) bool {
	_, ok := f.enumNames[name]
	return ok
}

// HasLocalMessage reports whether name is a message declared directly in the file.
func (f *SchemaFile) HasLocalMessage(name string) bool {
	_, ok := f.messageNames[name]
	return ok
}

// ScopeName implements Scope; the file root has no name prefix.
func (f *SchemaFile) ScopeName() string { return "" }

// Enclosing implements Scope; the file root is outermost.
func (f *SchemaFile) Enclosing() Scope { return nil }

// HasLocalEnum reports whether name is an enum declared directly in this message.
func (m *Message) HasLocalEnum(name string) bool {
	_, ok := m.enumNames[name]
	return ok
}

// HasLocalMessage reports whether name is a message declared directly in this message.
func (m *Message) HasLocalMessage(name string) bool {
	_, ok := m.messageNames[name]
	return ok
}

// ScopeName implements Scope.
func (m *Message) ScopeName() string { return m.FullName }

// Enclosing implements Scope.
func (m *Message) Enclosing() Scope {
	if m.Parent != nil {
		return m.Parent
	}
	return m.File
}

// AllMessages returns every message in the file, nested definitions
// before the message that declares them. This is the emission order for
// generated types and codecs.
func (f *SchemaFile) AllMessages() []*Message {
	var all []*Message
	var walk func(m *Message)
	walk = func(m *Message) {
		for _, nested := range m.Messages {
			walk(nested)
		}
		all = append(all, m)
	}
	for _, msg := range f.Messages {
		walk(msg)
	}
	return all
}

// AllEnums returns every enum in the file paired with its enclosing
// message scope (nil for top-level enums), in emission order.
func (f *SchemaFile) AllEnums() []ScopedEnum {
	var all []ScopedEnum
	for _, msg := range f.AllMessages() {
		for _, e := range msg.Enums {
			all = append(all, ScopedEnum{Enum: e, Owner: msg})
		}
	}
	for _, e := range f.Enums {
		all = append(all, ScopedEnum{Enum: e})
	}
	return all
}

// ScopedEnum is an enum plus the message that declares it, if any.
type ScopedEnum struct {
	Enum  *proto.Enum
	Owner *Message
}

// FullName returns the enum's dot-joined qualified name.
func (s ScopedEnum) FullName() string {
	if s.Owner != nil {
		return s.Owner.FullName + "." + s.Enum.Name
	}
	return s.Enum.Name
}
