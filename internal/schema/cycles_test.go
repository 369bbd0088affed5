package schema

import "testing"

func TestCyclicMessagesSelfReference(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Node {
  required int32 v = 1;
  required Node next = 2;
}

message Plain {
  required int32 v = 1;
}
`)

	cyclic := CyclicMessages(file)
	if !cyclic["Node"] {
		t.Error("self-referential Node should be cyclic")
	}
	if cyclic["Plain"] {
		t.Error("Plain has no cycle")
	}
}

func TestCyclicMessagesMutualRecursion(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message A {
  required B b = 1;
}

message B {
  required A a = 1;
}

message Leaf {
  required A a = 1;
}
`)

	cyclic := CyclicMessages(file)
	if !cyclic["A"] || !cyclic["B"] {
		t.Errorf("A and B are mutually recursive, got %v", cyclic)
	}
	if cyclic["Leaf"] {
		t.Error("Leaf points into the cycle but is not on it")
	}
}

func TestCyclicMessagesIndirectionBreaksCycle(t *testing.T) {
	// Optional, repeated and oneof references are already indirect in the
	// generated model; only required chains count.
	file := parse(t, `
syntax = "proto2";

message OptionalLoop {
  optional OptionalLoop next = 1;
}

message RepeatedLoop {
  repeated RepeatedLoop children = 1;
}
`)

	cyclic := CyclicMessages(file)
	if len(cyclic) != 0 {
		t.Errorf("no required-field cycles expected, got %v", cyclic)
	}
}

func TestCyclicMessagesNestedCycle(t *testing.T) {
	file := parse(t, `
syntax = "proto2";

message Outer {
  message Inner {
    required Outer back = 1;
  }
  required Inner inner = 1;
}
`)

	cyclic := CyclicMessages(file)
	if !cyclic["Outer"] || !cyclic["Outer.Inner"] {
		t.Errorf("Outer and Outer.Inner form a cycle, got %v", cyclic)
	}
}
