// Package report persists execution records as screenshots, JSON documents,
// and HTML pages.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devicelab-dev/webrun/pkg/core"
	"github.com/devicelab-dev/webrun/pkg/logger"
)

// Writer persists run records into one output directory.
type Writer struct {
	OutputDir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{OutputDir: dir}, nil
}

// Write stores the record's screenshots, then its JSON document and HTML
// page. Screenshot files are numbered per run in capture order.
func (w *Writer) Write(rec *core.RunRecord) error {
	counter := 1
	for si := range rec.Statements {
		stmt := &rec.Statements[si]
		for pi := range stmt.Screenshots {
			shot := &stmt.Screenshots[pi]
			shot.Path = fmt.Sprintf("%s_screenshot_%d.png", rec.Name, counter)
			counter++
			if err := os.WriteFile(filepath.Join(w.OutputDir, shot.Path), shot.PNG, 0644); err != nil {
				return fmt.Errorf("write screenshot %s: %w", shot.Path, err)
			}
		}
	}

	if err := w.writeJSON(rec); err != nil {
		return err
	}
	if err := w.writeHTML(rec); err != nil {
		return err
	}
	logger.Info("report written for run %q (%d statements)", rec.Name, len(rec.Statements))
	return nil
}

func (w *Writer) writeJSON(rec *core.RunRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	path := filepath.Join(w.OutputDir, rec.Name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

func (w *Writer) writeHTML(rec *core.RunRecord) error {
	html, err := renderHTML(rec)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	path := filepath.Join(w.OutputDir, rec.Name+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}

// SuiteSummary aggregates every run of one invocation, one entry per
// datatable row.
type SuiteSummary struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Status      core.Status `json:"status"`
	Passed      int         `json:"passed"`
	Failed      int         `json:"failed"`
	Runs        []SuiteRun  `json:"runs"`
}

// SuiteRun is one run's line in the suite summary.
type SuiteRun struct {
	Name     string        `json:"name"`
	Status   core.Status   `json:"status"`
	Duration time.Duration `json:"duration"`
	Report   string        `json:"report"`
}

// WriteSuite stores the cross-run summary as suite.json.
func (w *Writer) WriteSuite(runs []*core.RunRecord) (*SuiteSummary, error) {
	s := &SuiteSummary{
		GeneratedAt: time.Now(),
		Status:      core.StatusPassed,
	}
	for _, rec := range runs {
		s.Runs = append(s.Runs, SuiteRun{
			Name:     rec.Name,
			Status:   rec.Status,
			Duration: rec.Duration,
			Report:   rec.Name + ".html",
		})
		if rec.Status == core.StatusFailed {
			s.Failed++
			s.Status = core.StatusFailed
		} else {
			s.Passed++
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal suite summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.OutputDir, "suite.json"), data, 0644); err != nil {
		return nil, fmt.Errorf("write suite summary: %w", err)
	}
	return s, nil
}
