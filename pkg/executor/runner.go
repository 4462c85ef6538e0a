package executor

import (
	"context"
	"time"

	"github.com/devicelab-dev/webrun/pkg/core"
	"github.com/devicelab-dev/webrun/pkg/locator"
	"github.com/devicelab-dev/webrun/pkg/logger"
	"github.com/devicelab-dev/webrun/pkg/script"
)

// Runner drives a parsed script through the interpreter statement by
// statement and accumulates the execution record.
type Runner struct {
	Browser  core.Browser
	Resolver *locator.Resolver

	// Name labels the run in the record and report.
	Name string

	// StepDelay is a pause between statements so the page can settle.
	StepDelay time.Duration

	// Demo outlines located elements so a watcher can follow along.
	Demo bool
}

// New returns a runner over a browser session with default settings.
func New(b core.Browser) *Runner {
	return &Runner{
		Browser:   b,
		Resolver:  locator.New(b),
		StepDelay: time.Second,
	}
}

// Run executes the whole script against one datatable row and returns the
// execution record. The context is only checked between statements; a run
// never stops mid-statement.
func (r *Runner) Run(ctx context.Context, s *script.Script, row map[string]string) *core.RunRecord {
	st := NewState(row)
	in := &Interpreter{Browser: r.Browser, Resolver: r.Resolver, Demo: r.Demo}

	rec := &core.RunRecord{
		Name:       r.Name,
		ScriptPath: s.Path,
		StartTime:  time.Now(),
	}
	defer func() {
		rec.Duration = time.Since(rec.StartTime)
		rec.ComputeSummary()
	}()

	pc := 0
	for pc < len(s.Stmts) {
		if ctx.Err() != nil {
			logger.Warn("run cancelled at statement %d", pc)
			rec.ExitedEarly = true
			return rec
		}

		stmt := s.Stmts[pc]

		// Handlers are inert during forward execution; they only run via a
		// jump from a failing guarded statement.
		if _, ok := stmt.(script.CatchStmt); ok {
			pc++
			continue
		}

		entry, err := in.RunStmt(st, stmt)
		entry.Index = len(rec.Statements)
		rec.Statements = append(rec.Statements, entry)

		if err == nil {
			pc++
			if _, comment := stmt.(script.CommentStmt); !comment && r.StepDelay > 0 {
				time.Sleep(r.StepDelay)
			}
			continue
		}

		logger.Error("statement %d failed: %v", pc, err)
		target := s.CatchTargets[pc]
		if target < 0 {
			rec.ExitedEarly = true
			return rec
		}
		if st.retryUsed[target] {
			// The block already spent its retry; a renewed failure of the
			// guarded region ends the run.
			rec.ExitedEarly = true
			return rec
		}

		for j := pc + 1; j < target; j++ {
			rec.Statements = append(rec.Statements, core.ExecutedStmt{
				Index:     len(rec.Statements),
				Line:      s.Stmts[j].Line(),
				Text:      s.Stmts[j].Text(),
				Status:    core.StatusSkipped,
				StartTime: time.Now(),
			})
		}

		catch := s.Stmts[target].(script.CatchStmt)
		centry, tryAgain, cerr := r.execCatch(in, st, catch)
		centry.Index = len(rec.Statements)
		rec.Statements = append(rec.Statements, centry)
		if cerr != nil {
			logger.Error("catch-error handler failed: %v", cerr)
			rec.ExitedEarly = true
			return rec
		}
		if tryAgain {
			st.retryUsed[target] = true
			pc = s.GuardStarts[target]
			logger.Info("retrying from statement %d", pc)
		} else {
			pc = target + 1
		}
	}
	return rec
}

// execCatch runs a handler's commands. try-again is consumed here rather
// than interpreted; it marks the block for a single bounded re-run of the
// guarded region.
func (r *Runner) execCatch(in *Interpreter, st *State, catch script.CatchStmt) (core.ExecutedStmt, bool, error) {
	entry := core.ExecutedStmt{
		Line:      catch.Line(),
		Text:      catch.Text(),
		StartTime: time.Now(),
	}
	in.OnScreenshot = func(png []byte) {
		entry.Screenshots = append(entry.Screenshots, core.Screenshot{PNG: png})
	}
	defer func() { in.OnScreenshot = nil }()

	tryAgain := false
	var err error
	for _, c := range catch.Cmds {
		if c.Kind == script.CmdTryAgain {
			tryAgain = true
			continue
		}
		if err = in.Exec(c, st); err != nil {
			break
		}
	}

	entry.Duration = time.Since(entry.StartTime)
	if err != nil {
		entry.Status = core.StatusFailed
		entry.Error = err.Error()
	} else {
		entry.Status = core.StatusPassed
	}
	return entry, tryAgain, err
}
