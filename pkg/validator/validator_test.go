package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wr")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidate_CleanScript(t *testing.T) {
	path := writeScript(t, `url "https://example.com"
locate "Login" and click
catch-error: screenshot and try-again
chill "2"`)

	r := Validate(path)
	if !r.IsValid() {
		t.Errorf("expected a clean script, got %v", r.Errors)
	}
	if len(r.Files) != 1 {
		t.Errorf("expected 1 file, got %d", len(r.Files))
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"parse error", `teleport "home"`, "unknown command"},
		{"try-again outside catch", `locate "X" and try-again`, "only valid inside a catch-error block"},
		{"chill non-numeric", `chill "soon"`, "not a number of seconds"},
		{"empty url", `url ""`, "url argument is empty"},
		{"empty guard region", "url \"https://a.com\"\ncatch-error: refresh\ncatch-error: refresh", "guards no statements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(writeScript(t, tt.src))
			if r.IsValid() {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, err := range r.Errors {
				if strings.Contains(err.Error(), tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error containing %q in %v", tt.want, r.Errors)
			}
		})
	}
}

func TestValidate_ChillWithVariableIsAllowed(t *testing.T) {
	r := Validate(writeScript(t, `chill "<delay>"`))
	if !r.IsValid() {
		t.Errorf("interpolated chill argument cannot be checked statically, got %v", r.Errors)
	}
}

func TestValidate_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.wr"), []byte(`refresh`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.wr"), []byte(`nonsense "x"`), 0644); err != nil {
		t.Fatal(err)
	}

	r := Validate(dir)
	if len(r.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(r.Files))
	}
	if r.IsValid() {
		t.Error("expected errors from the broken file")
	}
}

func TestValidate_MissingFile(t *testing.T) {
	r := Validate(filepath.Join(t.TempDir(), "nope.wr"))
	if r.IsValid() {
		t.Fatal("expected an error")
	}
}
