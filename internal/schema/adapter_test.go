package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/emicklei/proto"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

func parse(t *testing.T, src string) *SchemaFile {
	t.Helper()
	file, err := Parse(strings.NewReader(src), "test.proto")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return file
}

func TestAdaptTopLevel(t *testing.T) {
	file := parse(t, `
syntax = "proto2";
package shop;

enum Status {
  OPEN = 0;
  CLOSED = 5;
}

message Order {
  required int32 id = 1;
}
`)

	if file.Syntax != "proto2" {
		t.Errorf("Syntax = %q", file.Syntax)
	}
	if file.Package != "shop" {
		t.Errorf("Package = %q", file.Package)
	}
	if !file.HasLocalEnum("Status") {
		t.Error("file should know top-level enum Status")
	}
	if !file.HasLocalMessage("Order") {
		t.Error("file should know top-level message Order")
	}
	if file.HasLocalMessage("Status") {
		t.Error("enum must not appear in the message set")
	}
}

func TestAdaptNestedBackReferences(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Outer {
  message Inner {
    message Core {
      required int32 v = 1;
    }
    required Core core = 1;
  }
  required Inner inner = 1;
}
`)

	outer := file.Messages[0]
	if outer.Parent != nil {
		t.Error("top-level message must have nil parent")
	}
	if outer.File != file {
		t.Error("top-level message must point at its file")
	}

	inner := outer.Messages[0]
	if inner.Parent != outer {
		t.Error("nested message parent must be the enclosing message")
	}
	if inner.File != file {
		t.Error("nested message must point at its file")
	}
	if inner.FullName != "Outer.Inner" {
		t.Errorf("FullName = %q, want Outer.Inner", inner.FullName)
	}

	core := inner.Messages[0]
	if core.FullName != "Outer.Inner.Core" {
		t.Errorf("FullName = %q, want Outer.Inner.Core", core.FullName)
	}
	if core.Parent != inner || core.File != file {
		t.Error("deep nesting must keep parent/file back-references")
	}
}

func TestAdaptDerivedNameSets(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Box {
  enum Kind {
    SMALL = 0;
  }
  message Lid {
    required bool open = 1;
  }
  required Kind kind = 1;
  required Lid lid = 2;
}
`)

	box := file.Messages[0]
	if !box.HasLocalEnum("Kind") {
		t.Error("Box should know its nested enum Kind")
	}
	if !box.HasLocalMessage("Lid") {
		t.Error("Box should know its nested message Lid")
	}
	if box.HasLocalEnum("Lid") || box.HasLocalMessage("Kind") {
		t.Error("name sets must not mix enums and messages")
	}
}

func TestAdaptPreservesElementOrder(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Mixed {
  required int32 first = 1;
  message Nested {
    required int32 v = 1;
  }
  optional string second = 2;
  oneof pick {
    int32 a = 3;
    string b = 4;
  }
  map<string, int32> counts = 5;
}
`)

	mixed := file.Messages[0]
	var kinds []string
	for _, element := range mixed.Elements {
		switch element.(type) {
		case *proto.NormalField:
			kinds = append(kinds, "field")
		case *Message:
			kinds = append(kinds, "message")
		case *proto.Oneof:
			kinds = append(kinds, "oneof")
		case *proto.MapField:
			kinds = append(kinds, "map")
		}
	}

	want := []string{"field", "message", "field", "oneof", "map"}
	if len(kinds) != len(want) {
		t.Fatalf("element kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("element kinds = %v, want %v", kinds, want)
		}
	}
}

func TestAdaptRejectsExtend(t *testing.T) {
	src := `
syntax = "proto2";

message Known {
  required int32 id = 1;
}

extend Known {
  optional int32 extra = 100;
}
`
	_, err := Parse(strings.NewReader(src), "test.proto")
	if err == nil {
		t.Fatal("expected error for extend block")
	}
	if !errors.Is(err, pmerrors.ErrUnsupportedElement) {
		t.Errorf("error = %v, want ErrUnsupportedElement", err)
	}
}

func TestAllMessagesNestedFirst(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Outer {
  message Inner {
    required int32 v = 1;
  }
  required Inner inner = 1;
}

message Second {
  required int32 v = 1;
}
`)

	var names []string
	for _, msg := range file.AllMessages() {
		names = append(names, msg.FullName)
	}

	want := []string{"Outer.Inner", "Outer", "Second"}
	if len(names) != len(want) {
		t.Fatalf("AllMessages order = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("AllMessages order = %v, want %v", names, want)
		}
	}
}

func TestAllEnumsIncludesNested(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

enum Top {
  A = 0;
}

message Holder {
  enum Local {
    X = 0;
  }
  required Local l = 1;
}
`)

	var names []string
	for _, se := range file.AllEnums() {
		names = append(names, se.FullName())
	}

	want := []string{"Holder.Local", "Top"}
	if len(names) != len(want) {
		t.Fatalf("AllEnums = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("AllEnums = %v, want %v", names, want)
		}
	}
}
