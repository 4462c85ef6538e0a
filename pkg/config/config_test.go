package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webrun.yaml")
	content := `browser: chrome
headless: true
output_dir: reports
locate_timeout: 30
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Browser != "chrome" {
		t.Errorf("expected chrome, got %q", cfg.Browser)
	}
	if !cfg.Headless {
		t.Error("expected headless")
	}
	if cfg.OutputDir != "reports" {
		t.Errorf("expected reports, got %q", cfg.OutputDir)
	}
	if cfg.LocateTimeoutSec != 30 {
		t.Errorf("expected 30, got %d", cfg.LocateTimeoutSec)
	}
	// Unset keys keep their defaults.
	if cfg.StepDelayMs != 1000 {
		t.Errorf("expected default step delay, got %d", cfg.StepDelayMs)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webrun.yaml")
	if err := os.WriteFile(path, []byte("browser: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadFromDir_MissingFile(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Browser != "firefox" {
		t.Errorf("expected defaults, got %q", cfg.Browser)
	}
}

func TestLoadFromDir_FindsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "webrun.yml"), []byte("browser: chrome"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Browser != "chrome" {
		t.Errorf("expected chrome, got %q", cfg.Browser)
	}
}
