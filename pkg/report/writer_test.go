package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devicelab-dev/webrun/pkg/core"
)

func sampleRecord() *core.RunRecord {
	rec := &core.RunRecord{
		Name:       "login_run_1",
		ScriptPath: "login.wr",
		Browser:    "firefox",
		StartTime:  time.Now(),
		Duration:   3 * time.Second,
		Statements: []core.ExecutedStmt{
			{Index: 0, Line: 1, Text: `url "https://example.com"`, Status: core.StatusPassed},
			{
				Index: 1, Line: 2, Text: `locate "Email" and click`,
				Status:      core.StatusPassed,
				Screenshots: []core.Screenshot{{PNG: []byte("png1")}, {PNG: []byte("png2")}},
			},
			{
				Index: 2, Line: 3, Text: `locate "Missing" and click`,
				Status: core.StatusFailed,
				Error:  `could not locate "Missing" on the page`,
			},
		},
		ExitedEarly: true,
	}
	rec.ComputeSummary()
	return rec
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := sampleRecord()
	if err := w.Write(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Screenshots numbered in capture order with the run name prefix.
	for i, name := range []string{"login_run_1_screenshot_1.png", "login_run_1_screenshot_2.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("screenshot %s not written: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("screenshot %d is empty", i+1)
		}
	}
	if rec.Statements[1].Screenshots[0].Path != "login_run_1_screenshot_1.png" {
		t.Errorf("record should reference the file, got %q", rec.Statements[1].Screenshots[0].Path)
	}

	// JSON document round-trips.
	data, err := os.ReadFile(filepath.Join(dir, "login_run_1.json"))
	if err != nil {
		t.Fatalf("json report not written: %v", err)
	}
	var loaded core.RunRecord
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("json report unreadable: %v", err)
	}
	if len(loaded.Statements) != 3 || loaded.Failed != 1 {
		t.Errorf("unexpected loaded record: %+v", loaded)
	}
	if strings.Contains(string(data), "png1") {
		t.Error("screenshot bytes must not be embedded in the JSON document")
	}

	// HTML page carries the statement text and the error.
	html, err := os.ReadFile(filepath.Join(dir, "login_run_1.html"))
	if err != nil {
		t.Fatalf("html report not written: %v", err)
	}
	page := string(html)
	if !strings.Contains(page, "login_run_1") {
		t.Error("html should name the run")
	}
	if !strings.Contains(page, "Missing") {
		t.Error("html should show the failing statement")
	}
	if !strings.Contains(page, "login_run_1_screenshot_1.png") {
		t.Error("html should reference the screenshots")
	}
}

func TestWriteSuite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	passing := &core.RunRecord{Name: "run_1", Status: core.StatusPassed}
	failing := &core.RunRecord{Name: "run_2", Status: core.StatusFailed}

	s, err := w.WriteSuite([]*core.RunRecord{passing, failing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != core.StatusFailed {
		t.Errorf("one failing run fails the suite, got %s", s.Status)
	}
	if s.Passed != 1 || s.Failed != 1 {
		t.Errorf("unexpected counts: passed=%d failed=%d", s.Passed, s.Failed)
	}

	data, err := os.ReadFile(filepath.Join(dir, "suite.json"))
	if err != nil {
		t.Fatalf("suite.json not written: %v", err)
	}
	if !strings.Contains(string(data), "run_2.html") {
		t.Error("suite summary should link each run's report")
	}
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	rec := &core.RunRecord{
		Name: "xss",
		Statements: []core.ExecutedStmt{
			{Text: `locate "<script>alert(1)</script>"`, Status: core.StatusPassed},
		},
	}
	page, err := renderHTML(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(page, "<script>alert(1)</script>") {
		t.Error("statement text must be HTML-escaped")
	}
}
