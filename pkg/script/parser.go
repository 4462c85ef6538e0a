package script

import (
	"fmt"
	"os"
	"strings"
)

// ParseError represents a parsing error with location info.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ParseFile parses a single webrun script file.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided script file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(string(data), path)
}

// Parse parses webrun script content. Blank lines are dropped, comment lines
// are kept verbatim, and a line whose last token is the connective "and"
// continues onto the next line.
func Parse(src, path string) (*Script, error) {
	script := &Script{Path: path}

	lines := strings.Split(src, "\n")
	for i := 0; i < len(lines); i++ {
		startLine := i + 1
		raw := strings.TrimSpace(lines[i])
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "#") {
			script.Stmts = append(script.Stmts, CommentStmt{
				baseStmt: baseStmt{SrcText: raw, SrcLine: startLine},
			})
			continue
		}

		tokens, err := scanLine(raw)
		if err != nil {
			return nil, &ParseError{Path: path, Line: startLine, Message: err.Error()}
		}

		// A trailing connective pulls the next non-blank lines in.
		for endsWithConnective(tokens) && i+1 < len(lines) {
			i++
			next := strings.TrimSpace(lines[i])
			if next == "" {
				continue
			}
			more, err := scanLine(next)
			if err != nil {
				return nil, &ParseError{Path: path, Line: i + 1, Message: err.Error()}
			}
			raw += " " + next
			tokens = append(tokens, more...)
		}

		stmt, err := parseStmt(tokens, raw, startLine, path)
		if err != nil {
			return nil, err
		}
		script.Stmts = append(script.Stmts, stmt)
	}

	buildCatchTables(script)
	return script, nil
}

func endsWithConnective(tokens []Token) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	return !last.Quoted && (last.Text == "and" || last.Text == "then")
}

func buildCatchTables(script *Script) {
	n := len(script.Stmts)
	script.CatchTargets = make([]int, n)
	script.GuardStarts = make(map[int]int)

	next := -1
	for i := n - 1; i >= 0; i-- {
		if _, ok := script.Stmts[i].(CatchStmt); ok {
			next = i
			script.CatchTargets[i] = -1
			continue
		}
		script.CatchTargets[i] = next
	}

	prev := -1
	for i := 0; i < n; i++ {
		if _, ok := script.Stmts[i].(CatchStmt); ok {
			script.GuardStarts[i] = prev + 1
			prev = i
		}
	}
}

// lineParser walks the token list of one logical line.
type lineParser struct {
	tokens []Token
	pos    int
	path   string
	line   int
}

func parseStmt(tokens []Token, raw string, line int, path string) (Stmt, error) {
	p := &lineParser{tokens: tokens, path: path, line: line}
	base := baseStmt{SrcText: raw, SrcLine: line}

	head := p.peek()
	switch {
	case head == nil:
		return nil, p.errorf("empty statement")
	case !head.Quoted && head.Text == "save":
		return p.parseSave(base)
	case !head.Quoted && head.Text == "if":
		return p.parseIf(base)
	case !head.Quoted && head.Text == "catch-error:":
		p.advance()
		cmds, err := p.parseCmdSeq()
		if err != nil {
			return nil, err
		}
		return CatchStmt{baseStmt: base, Cmds: cmds}, nil
	case !head.Quoted && head.Text == "under":
		p.advance()
		anchor := p.peek()
		if anchor == nil || !anchor.Quoted {
			return nil, p.errorf("expected a quoted anchor after under")
		}
		p.advance()
		cmds, err := p.parseCmdSeq()
		if err != nil {
			return nil, err
		}
		return UnderStmt{baseStmt: base, Anchor: anchor.Text, Cmds: cmds}, nil
	case !head.Quoted && head.Text == "under-active-element":
		p.advance()
		cmds, err := p.parseCmdSeq()
		if err != nil {
			return nil, err
		}
		return UnderActiveStmt{baseStmt: base, Cmds: cmds}, nil
	default:
		cmds, err := p.parseCmdSeq()
		if err != nil {
			return nil, err
		}
		return CmdStmt{baseStmt: base, Cmds: cmds}, nil
	}
}

func (p *lineParser) parseSave(base baseStmt) (Stmt, error) {
	p.advance() // save
	value := p.peek()
	if value == nil || !value.Quoted {
		return nil, p.errorf("expected a quoted value after save")
	}
	p.advance()
	if as := p.peek(); as == nil || as.Quoted || as.Text != "as" {
		return nil, p.errorf("expected as after the saved value")
	}
	p.advance()
	name := p.peek()
	if name == nil || name.Quoted || !isIdent(name.Text) {
		return nil, p.errorf("expected a variable name after as")
	}
	p.advance()
	if p.peek() != nil {
		return nil, p.errorf("unexpected token %q after save statement", p.peek().Text)
	}
	return SaveStmt{baseStmt: base, Value: value.Text, Name: name.Text}, nil
}

func (p *lineParser) parseIf(base baseStmt) (Stmt, error) {
	p.advance() // if
	pred, err := p.parseCmd()
	if err != nil {
		return nil, err
	}
	if then := p.peek(); then == nil || then.Quoted || then.Text != "then" {
		return nil, p.errorf("expected then after the if condition")
	}
	p.advance()
	body, err := p.parseCmdSeq()
	if err != nil {
		return nil, err
	}
	return IfStmt{baseStmt: base, Pred: pred, Body: body}, nil
}

func (p *lineParser) parseCmdSeq() ([]Cmd, error) {
	var cmds []Cmd
	for {
		cmd, err := p.parseCmd()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)

		tok := p.peek()
		if tok == nil {
			return cmds, nil
		}
		if tok.Quoted || tok.Text != "and" {
			return nil, p.errorf("expected and between commands, got %q", tok.Text)
		}
		p.advance()
	}
}

func (p *lineParser) parseCmd() (Cmd, error) {
	tok := p.peek()
	if tok == nil {
		return Cmd{}, p.errorf("expected a command")
	}
	if tok.Quoted || !IsCmdKind(tok.Text) {
		return Cmd{}, p.errorf("unknown command %q", tok.Text)
	}
	kind := CmdKind(tok.Text)
	p.advance()

	if !cmdArity[kind] {
		return Cmd{Kind: kind}, nil
	}

	arg := p.peek()
	if arg == nil {
		return Cmd{}, p.errorf("command %s requires an argument", kind)
	}
	if kind == CmdReadTo {
		if arg.Quoted || !isIdent(arg.Text) {
			return Cmd{}, p.errorf("read-to requires a bare variable name")
		}
	} else if !arg.Quoted {
		return Cmd{}, p.errorf("command %s requires a quoted argument", kind)
	}
	p.advance()
	return Cmd{Kind: kind, Arg: arg.Text}, nil
}

func (p *lineParser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *lineParser) advance() { p.pos++ }

func (p *lineParser) errorf(format string, args ...any) error {
	return &ParseError{
		Path:    p.path,
		Line:    p.line,
		Message: fmt.Sprintf(format, args...),
	}
}
