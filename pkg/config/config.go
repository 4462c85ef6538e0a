// Package config loads the workspace configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace config file webrun looks for.
const FileName = "webrun.yaml"

// Config is the workspace configuration. CLI flags override these values.
type Config struct {
	// Browser is firefox or chrome.
	Browser string `yaml:"browser"`

	// Headless runs the browser without a window.
	Headless bool `yaml:"headless"`

	// DriverPath overrides the driver binary looked up on PATH.
	DriverPath string `yaml:"driver_path"`

	// DriverURL points at an already-running driver.
	DriverURL string `yaml:"driver_url"`

	// Port for the launched driver. Zero picks the browser's default.
	Port int `yaml:"port"`

	// OutputDir receives reports and screenshots.
	OutputDir string `yaml:"output_dir"`

	// Datatable is a CSV file; the script runs once per row.
	Datatable string `yaml:"datatable"`

	// LocateTimeoutSec bounds the implicit wait of a document-scope locate.
	LocateTimeoutSec int `yaml:"locate_timeout"`

	// StepDelayMs is the pause between statements.
	StepDelayMs int `yaml:"step_delay"`

	// LogFile receives the run log.
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Browser:          "firefox",
		OutputDir:        "webrun-out",
		LocateTimeoutSec: 10,
		StepDelayMs:      1000,
		LogFile:          "webrun.log",
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir looks for webrun.yaml (or .yml) in dir. A missing file is not
// an error; the defaults apply.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{FileName, "webrun.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
