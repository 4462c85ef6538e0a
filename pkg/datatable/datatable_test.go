package datatable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "username,password\na@b.com, secret1 \nc@d.com,secret2\n")

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "username" {
		t.Errorf("unexpected columns: %v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0]["username"] != "a@b.com" {
		t.Errorf("unexpected value: %q", tbl.Rows[0]["username"])
	}
	if tbl.Rows[0]["password"] != "secret1" {
		t.Errorf("values should be trimmed, got %q", tbl.Rows[0]["password"])
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestLoad_RaggedRecord(t *testing.T) {
	// csv.Reader already rejects records with the wrong field count; the
	// error must name the file.
	path := writeCSV(t, "a,b\n1,2,3\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for a ragged record")
	}
	if !strings.Contains(err.Error(), "data.csv") {
		t.Errorf("error should name the file, got %q", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected an error")
	}
}
