package core

import "time"

// Status represents the lifecycle state of a statement or a run.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Screenshot is a single captured image. The raw bytes are kept out of the
// JSON record; the report writer stores them on disk and references the path.
type Screenshot struct {
	Path string `json:"path"`
	PNG  []byte `json:"-"`
}

// ExecutedStmt records the outcome of one script statement.
type ExecutedStmt struct {
	Index       int          `json:"index"`
	Line        int          `json:"line"`
	Text        string       `json:"text"`
	Status      Status       `json:"status"`
	Error       string       `json:"error,omitempty"`
	Screenshots []Screenshot `json:"screenshots,omitempty"`
	StartTime   time.Time    `json:"start_time"`
	Duration    time.Duration `json:"duration"`
}

// RunRecord is the complete outcome of one script execution.
type RunRecord struct {
	Name       string         `json:"name"`
	ScriptPath string         `json:"script_path"`
	Browser    string         `json:"browser"`
	StartTime  time.Time      `json:"start_time"`
	Duration   time.Duration  `json:"duration"`
	Status     Status         `json:"status"`
	Statements []ExecutedStmt `json:"statements"`
	ExitedEarly bool          `json:"exited_early"`

	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ComputeSummary fills the aggregate counters and overall status from the
// per-statement results.
func (r *RunRecord) ComputeSummary() {
	r.Passed, r.Failed, r.Skipped = 0, 0, 0
	for _, s := range r.Statements {
		switch s.Status {
		case StatusPassed:
			r.Passed++
		case StatusFailed:
			r.Failed++
		case StatusSkipped:
			r.Skipped++
		}
	}
	if r.Failed > 0 || r.ExitedEarly {
		r.Status = StatusFailed
	} else {
		r.Status = StatusPassed
	}
}
