// Package validator checks scripts for problems detectable without a
// browser: parse errors, misplaced try-again, and bad argument literals.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/devicelab-dev/webrun/pkg/script"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	File    string
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Result contains the validation result.
type Result struct {
	// Files is the list of validated script paths.
	Files []string
	// Errors contains all validation errors found.
	Errors []error
}

// IsValid returns true if there are no validation errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate checks a script file or a directory of script files.
func Validate(path string) *Result {
	result := &Result{}

	info, err := os.Stat(path)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			File:    path,
			Message: fmt.Sprintf("cannot access: %v", err),
		})
		return result
	}

	var files []string
	if info.IsDir() {
		entries, err := filepath.Glob(filepath.Join(path, "*.wr"))
		if err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				File:    path,
				Message: fmt.Sprintf("failed to scan directory: %v", err),
			})
			return result
		}
		files = entries
	} else {
		files = []string{path}
	}

	for _, file := range files {
		result.Files = append(result.Files, file)
		s, err := script.ParseFile(file)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Errors = append(result.Errors, checkScript(file, s)...)
	}
	return result
}

// checkScript inspects a parsed script for runtime problems a dry read can
// already catch.
func checkScript(file string, s *script.Script) []error {
	var errs []error

	for i, stmt := range s.Stmts {
		var cmds []script.Cmd
		inCatch := false

		switch v := stmt.(type) {
		case script.CmdStmt:
			cmds = v.Cmds
		case script.IfStmt:
			cmds = append([]script.Cmd{v.Pred}, v.Body...)
		case script.CatchStmt:
			cmds = v.Cmds
			inCatch = true
		case script.UnderStmt:
			cmds = v.Cmds
		case script.UnderActiveStmt:
			cmds = v.Cmds
		default:
			continue
		}

		for _, c := range cmds {
			switch c.Kind {
			case script.CmdTryAgain:
				if !inCatch {
					errs = append(errs, &ValidationError{
						File:    file,
						Line:    stmt.Line(),
						Message: "try-again is only valid inside a catch-error block",
					})
				}
			case script.CmdChill:
				if !strings.Contains(c.Arg, "<") {
					if _, err := strconv.ParseFloat(c.Arg, 64); err != nil {
						errs = append(errs, &ValidationError{
							File:    file,
							Line:    stmt.Line(),
							Message: fmt.Sprintf("chill argument %q is not a number of seconds", c.Arg),
						})
					}
				}
			case script.CmdURL:
				if c.Arg == "" {
					errs = append(errs, &ValidationError{
						File:    file,
						Line:    stmt.Line(),
						Message: "url argument is empty",
					})
				}
			}
		}

		// A guarded region that can never reach its handler is almost
		// always a script mistake worth flagging.
		if _, ok := stmt.(script.CatchStmt); ok && s.GuardStarts[i] == i {
			errs = append(errs, &ValidationError{
				File:    file,
				Line:    stmt.Line(),
				Message: "catch-error block guards no statements",
			})
		}
	}
	return errs
}
