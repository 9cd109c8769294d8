package keys

import "testing"

func TestValidateAccepts(t *testing.T) {
	for _, k := range []string{"a", "user:42", "report.2024-01", "A-Mixed.Case:OK", "0"} {
		if err := Validate(k); err != nil {
			t.Fatalf("Validate(%q): %v", k, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	for _, k := range []string{"", "has space", "slash/y", "unié", "tab\tx", "brace{"} {
		if err := Validate(k); err == nil {
			t.Fatalf("Validate(%q): expected error", k)
		}
	}
}

func TestNormalizeFoldsCase(t *testing.T) {
	if got := Normalize("Foo.BAR:Baz"); got != "foo.bar:baz" {
		t.Fatalf("Normalize: got %q", got)
	}
}
