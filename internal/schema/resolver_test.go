package schema

import "testing"

func TestResolveNestedQualifiedName(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Outer {
  message Inner {
    required int32 v = 1;
  }
  required Inner inner = 1;
}
`)

	outer := file.Messages[0]
	got := Resolve(outer, "Inner")
	if got.Kind != KindMessage {
		t.Errorf("Kind = %v, want message", got.Kind)
	}
	if got.Name != "Outer.Inner" {
		t.Errorf("Name = %q, want Outer.Inner", got.Name)
	}
}

func TestResolveShadowing(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Thing {
  required int32 v = 1;
}

message A {
  message Thing {
    required string v = 1;
  }
  required Thing t = 1;
}
`)

	a := file.Messages[1]
	got := Resolve(a, "Thing")
	if got.Name != "A.Thing" {
		t.Errorf("from within A, Thing = %q, want the nested A.Thing", got.Name)
	}

	topGot := Resolve(file, "Thing")
	if topGot.Name != "Thing" || topGot.Kind != KindMessage {
		t.Errorf("from file scope, Thing = %+v, want top-level message", topGot)
	}
}

func TestResolveWalksToOuterScope(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Outer {
  enum Color {
    RED = 0;
  }
  message Inner {
    required Color c = 1;
  }
  required Inner inner = 1;
}
`)

	inner := file.Messages[0].Messages[0]
	got := Resolve(inner, "Color")
	if got.Kind != KindEnum {
		t.Errorf("Kind = %v, want enum", got.Kind)
	}
	if got.Name != "Outer.Color" {
		t.Errorf("Name = %q, want Outer.Color", got.Name)
	}
}

func TestResolveTopLevelFromDeepScope(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

enum Status {
  OK = 0;
}

message Outer {
  message Inner {
    required Status s = 1;
  }
  required Inner inner = 1;
}
`)

	inner := file.Messages[0].Messages[0]
	got := Resolve(inner, "Status")
	if got.Kind != KindEnum || got.Name != "Status" {
		t.Errorf("Status = %+v, want top-level enum Status", got)
	}
}

func TestResolvePrimitivesLast(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message P {
  required int32 v = 1;
}
`)

	p := file.Messages[0]
	tests := []struct {
		proto string
		alias string
	}{
		{"int32", "Int32"},
		{"sint64", "SInt64"},
		{"fixed32", "Fixed32"},
		{"string", "String"},
		{"bool", "Bool"},
		{"bytes", "Bytes"},
		{"double", "Double"},
	}
	for _, tt := range tests {
		got := Resolve(p, tt.proto)
		if got.Kind != KindPrimitive {
			t.Errorf("Resolve(%q).Kind = %v, want primitive", tt.proto, got.Kind)
			continue
		}
		if got.Name != tt.alias {
			t.Errorf("Resolve(%q).Name = %q, want %q", tt.proto, got.Name, tt.alias)
		}
		if got.Primitive == nil || got.Primitive.ProtoName != tt.proto {
			t.Errorf("Resolve(%q).Primitive missing or wrong", tt.proto)
		}
	}
}

func TestResolveLocalShadowsPrimitive(t *testing.T) {
	// A message named like a scalar shadows the scalar table, which is
	// consulted last.
	file := parse(t, `
syntax = "proto2";

message Holder {
  message string {
    required int32 v = 1;
  }
  required string s = 1;
}
`)

	holder := file.Messages[0]
	got := Resolve(holder, "string")
	if got.Kind != KindMessage || got.Name != "Holder.string" {
		t.Errorf("Resolve(string) = %+v, want local message Holder.string", got)
	}
}

func TestResolveFallthroughIsExternal(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Ref {
  required SomewhereElse x = 1;
}
`)

	ref := file.Messages[0]
	got := Resolve(ref, "SomewhereElse")
	if got.Kind != KindExternal {
		t.Errorf("Kind = %v, want external fallthrough", got.Kind)
	}
	if got.Name != "SomewhereElse" {
		t.Errorf("Name = %q, external names must pass through unchanged", got.Name)
	}
}

func TestIsMapKeyType(t *testing.T) {
	valid := []string{"int32", "int64", "uint32", "uint64", "sint32", "sint64", "fixed32", "fixed64", "sfixed32", "sfixed64", "bool", "string"}
	for _, name := range valid {
		if !IsMapKeyType(name) {
			t.Errorf("IsMapKeyType(%q) = false, want true", name)
		}
	}
	invalid := []string{"float", "double", "bytes", "SomeMessage"}
	for _, name := range invalid {
		if IsMapKeyType(name) {
			t.Errorf("IsMapKeyType(%q) = true, want false", name)
		}
	}
}
