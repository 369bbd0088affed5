package generator

import (
	"errors"
	"testing"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

func TestRenderEnum(t *testing.T) {
	file := parseSchema(t, `
syntax = "proto2";

enum Color {
  RED = 0;
  BLUE = 5;
}
`)
	got, err := renderEnum(file.AllEnums()[0])
	if err != nil {
		t.Fatal(err)
	}

	want := `// Color is the generated model for enum Color.
type Color int32

const (
	Color_RED Color = 0
	Color_BLUE Color = 5
)
`
	assertTextEqual(t, got, want)
}

func TestRenderEnumNested(t *testing.T) {
	file := parseSchema(t, `
syntax = "proto2";

message Holder {
  enum Local {
    X = 0;
  }
  required Local l = 1;
}
`)
	got, err := renderEnum(file.AllEnums()[0])
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, got,
		"type Holder_Local int32",
		"Holder_Local_X Holder_Local = 0",
	)
}

func TestRenderEnumRejectsOptions(t *testing.T) {
	file := parseSchema(t, `
syntax = "proto2";

enum Aliased {
  option allow_alias = true;
  A = 0;
  B = 0;
}
`)
	_, err := renderEnum(file.AllEnums()[0])
	if !errors.Is(err, pmerrors.ErrUnsupportedElement) {
		t.Errorf("err = %v, want ErrUnsupportedElement", err)
	}
}

func TestEnumMemberNames(t *testing.T) {
	file := parseSchema(t, `
syntax = "proto2";

enum Status {
  OPEN = 0;
  CLOSED = 1;
}
`)
	got := enumMemberNames(file.AllEnums()[0])
	want := []string{"Status_OPEN", "Status_CLOSED"}
	if len(got) != len(want) {
		t.Fatalf("members = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("members = %v, want %v", got, want)
		}
	}
}
