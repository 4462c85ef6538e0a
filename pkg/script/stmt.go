// Package script handles parsing and representation of webrun script files.
package script

import "strings"

// CmdKind represents the kind of a command.
type CmdKind string

// Command kind constants.
const (
	// Navigation
	CmdURL     CmdKind = "url"
	CmdRefresh CmdKind = "refresh"

	// Locating
	CmdLocate         CmdKind = "locate"
	CmdLocateNoScroll CmdKind = "locate-no-scroll"

	// Interaction
	CmdClick  CmdKind = "click"
	CmdType   CmdKind = "type"
	CmdSelect CmdKind = "select"
	CmdUpload CmdKind = "upload"
	CmdPress  CmdKind = "press"
	CmdDragTo CmdKind = "drag-to"

	// Reading & Capture
	CmdReadTo     CmdKind = "read-to"
	CmdScreenshot CmdKind = "screenshot"

	// Alerts
	CmdAcceptAlert  CmdKind = "accept-alert"
	CmdDismissAlert CmdKind = "dismiss-alert"

	// Flow Control
	CmdChill    CmdKind = "chill"
	CmdTryAgain CmdKind = "try-again"
)

// cmdArity maps each command kind to whether it takes an argument.
var cmdArity = map[CmdKind]bool{
	CmdURL:            true,
	CmdRefresh:        false,
	CmdLocate:         true,
	CmdLocateNoScroll: true,
	CmdClick:          false,
	CmdType:           true,
	CmdSelect:         true,
	CmdUpload:         true,
	CmdPress:          true,
	CmdDragTo:         true,
	CmdReadTo:         true,
	CmdScreenshot:     false,
	CmdAcceptAlert:    false,
	CmdDismissAlert:   false,
	CmdChill:          true,
	CmdTryAgain:       false,
}

// IsCmdKind reports whether a token names a known command.
func IsCmdKind(word string) bool {
	_, ok := cmdArity[CmdKind(word)]
	return ok
}

// Cmd is a single command with its literal argument. The argument keeps any
// <Name> interpolation tokens untouched; substitution happens at run time so
// one parsed script can serve every datatable row.
type Cmd struct {
	Kind CmdKind
	Arg  string
}

// Describe returns a human-readable rendering of the command.
func (c Cmd) Describe() string {
	if cmdArity[c.Kind] {
		return string(c.Kind) + " " + quote(c.Arg)
	}
	return string(c.Kind)
}

func quote(s string) string {
	return `"` + s + `"`
}

// Stmt is the interface for all script statements.
type Stmt interface {
	// Text returns the statement's source text, verbatim.
	Text() string
	// Line returns the 1-based source line the statement starts on.
	Line() int
}

// baseStmt carries the source location common to all statements.
type baseStmt struct {
	SrcText string
	SrcLine int
}

func (b baseStmt) Text() string { return b.SrcText }
func (b baseStmt) Line() int    { return b.SrcLine }

// CommentStmt is a #-prefixed line, preserved verbatim for reporting.
type CommentStmt struct {
	baseStmt
}

// SaveStmt binds a literal (or interpolated) value to a variable name.
type SaveStmt struct {
	baseStmt
	Value string
	Name  string
}

// CmdStmt is a sequence of commands joined by "and". All must succeed, in
// order, for the statement to succeed.
type CmdStmt struct {
	baseStmt
	Cmds []Cmd
}

// IfStmt evaluates the predicate command; the body runs only when the
// predicate succeeds. A failing predicate skips the body without error.
type IfStmt struct {
	baseStmt
	Pred Cmd
	Body []Cmd
}

// CatchStmt is an error handler. During normal forward execution it is
// skipped; the runner jumps to it when an earlier guarded statement fails.
type CatchStmt struct {
	baseStmt
	Cmds []Cmd
}

// UnderStmt scopes its commands to a search anchor resolved from a query.
// The scope lasts for exactly this one statement.
type UnderStmt struct {
	baseStmt
	Anchor string
	Cmds   []Cmd
}

// UnderActiveStmt scopes its commands to the browser's active element.
type UnderActiveStmt struct {
	baseStmt
	Cmds []Cmd
}

// Script is a parsed script with the precomputed catch-error jump tables.
type Script struct {
	Path  string
	Stmts []Stmt

	// CatchTargets maps each statement index to the index of the nearest
	// subsequent CatchStmt, or -1 when the statement is unguarded.
	CatchTargets []int

	// GuardStarts maps each CatchStmt index to the first statement index of
	// the region it guards (the statement after the previous CatchStmt, or
	// zero for the first block).
	GuardStarts map[int]int
}

// Describe returns a short summary of the script for logging.
func (s *Script) Describe() string {
	var b strings.Builder
	for i, st := range s.Stmts {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(st.Text())
	}
	return b.String()
}
