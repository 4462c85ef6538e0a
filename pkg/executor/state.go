// Package executor evaluates parsed scripts against a browser session,
// implementing the runtime state, the per-command semantics, and the
// catch-error control flow.
package executor

import (
	"regexp"

	"github.com/devicelab-dev/webrun/pkg/core"
)

// State is the mutable runtime state of one script run. A fresh State is
// created per run; nothing is shared across runs.
type State struct {
	// Vars holds bindings created by save and read-to.
	Vars map[string]string

	// Row is the datatable row for this run. Read-only.
	Row map[string]string

	// Located is the element of the last successful locate, if any.
	Located *core.ElementRef

	// Active is the last element the browser reported as focused after a
	// click or type.
	Active *core.ElementRef

	// Scope is the search anchor for the current statement, set by under
	// and under-active-element. Nil means document root.
	Scope *core.ElementRef

	// LastQuery is the query of the last locate, kept so a stale element
	// can be re-resolved against the live page.
	LastQuery string

	// retryUsed tracks which catch-error blocks have spent their retry.
	retryUsed map[int]bool
}

// NewState returns the runtime state for one run over an optional datatable
// row.
func NewState(row map[string]string) *State {
	return &State{
		Vars:      make(map[string]string),
		Row:       row,
		retryUsed: make(map[int]bool),
	}
}

var interpPattern = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_]*)>`)

// Interpolate substitutes <Name> tokens from the variable map first, then
// the datatable row. Unknown names are left untouched.
func (s *State) Interpolate(raw string) string {
	return interpPattern.ReplaceAllStringFunc(raw, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if v, ok := s.Vars[name]; ok {
			return v
		}
		if v, ok := s.Row[name]; ok {
			return v
		}
		return tok
	})
}
