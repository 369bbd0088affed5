package generator

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/carlosnayan/protomodel/internal/schema"
)

func parseSchema(t *testing.T, src string) *schema.SchemaFile {
	t.Helper()
	file, err := schema.Parse(strings.NewReader(src), "test.proto")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return file
}

// assertTextEqual compares generated text against a golden string and
// reports a unified diff on mismatch.
func assertTextEqual(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	t.Errorf("generated text mismatch:\n%s", diff)
}

func assertContains(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			t.Errorf("generated text missing %q\n---\n%s", needle, haystack)
		}
	}
}

func assertNotContains(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			t.Errorf("generated text must not contain %q", needle)
		}
	}
}
