package executor

import (
	"fmt"
	"strconv"
	"time"

	"github.com/devicelab-dev/webrun/pkg/core"
	"github.com/devicelab-dev/webrun/pkg/locator"
	"github.com/devicelab-dev/webrun/pkg/logger"
	"github.com/devicelab-dev/webrun/pkg/script"
)

// highlightScript outlines an element so a watcher can follow a demo run.
const highlightScript = `arguments[0].style.outline = "3px solid #e4572e";`

// dragScript simulates a drag from one element to another with synthesized
// mouse and HTML5 drag events, since a native pointer drag is not reliable
// across drivers.
const dragScript = `
var src = arguments[0], dst = arguments[1];
var s = src.getBoundingClientRect(), d = dst.getBoundingClientRect();
var sx = s.left + s.width / 2, sy = s.top + s.height / 2;
var dx = d.left + d.width / 2, dy = d.top + d.height / 2;
function fire(el, type, x, y, dt) {
    var opts = {bubbles: true, cancelable: true, clientX: x, clientY: y, view: window};
    var ev;
    if (type.indexOf("drag") === 0 || type === "drop") {
        ev = new DragEvent(type, opts);
        if (dt) Object.defineProperty(ev, "dataTransfer", {value: dt});
    } else {
        ev = new MouseEvent(type, opts);
    }
    el.dispatchEvent(ev);
}
var dt = new DataTransfer();
fire(src, "mousedown", sx, sy);
fire(src, "dragstart", sx, sy, dt);
fire(dst, "dragenter", dx, dy, dt);
fire(dst, "dragover", dx, dy, dt);
fire(dst, "drop", dx, dy, dt);
fire(src, "dragend", dx, dy, dt);
fire(dst, "mouseup", dx, dy);
`

// Interpreter evaluates one command at a time against the runtime state.
type Interpreter struct {
	Browser  core.Browser
	Resolver *locator.Resolver

	// Demo outlines each located element on the page.
	Demo bool

	// OnScreenshot receives the bytes of every screenshot command. The
	// runner points this at the current statement's record.
	OnScreenshot func(png []byte)
}

// RunStmt executes one statement and builds its record entry. Screenshots
// taken during the statement land on the entry.
func (in *Interpreter) RunStmt(st *State, stmt script.Stmt) (core.ExecutedStmt, error) {
	entry := core.ExecutedStmt{
		Line:      stmt.Line(),
		Text:      stmt.Text(),
		StartTime: time.Now(),
	}
	in.OnScreenshot = func(png []byte) {
		entry.Screenshots = append(entry.Screenshots, core.Screenshot{PNG: png})
	}
	defer func() { in.OnScreenshot = nil }()

	err, predFailed := in.evalStmt(st, stmt)
	entry.Duration = time.Since(entry.StartTime)

	switch {
	case predFailed:
		entry.Status = core.StatusSkipped
	case err != nil:
		entry.Status = core.StatusFailed
		entry.Error = err.Error()
	default:
		entry.Status = core.StatusPassed
	}
	return entry, err
}

// evalStmt dispatches on the statement kind. The second result reports an If
// statement whose predicate failed, which skips the body without error.
func (in *Interpreter) evalStmt(st *State, stmt script.Stmt) (error, bool) {
	switch v := stmt.(type) {
	case script.CommentStmt:
		return nil, false

	case script.SaveStmt:
		st.Vars[v.Name] = st.Interpolate(v.Value)
		return nil, false

	case script.CmdStmt:
		return in.ExecSeq(v.Cmds, st), false

	case script.IfStmt:
		if perr := in.Exec(v.Pred, st); perr != nil {
			logger.Debug("if condition failed, skipping body: %v", perr)
			return nil, true
		}
		return in.ExecSeq(v.Body, st), false

	case script.UnderStmt:
		anchor, err := in.Resolver.Resolve(st.Interpolate(v.Anchor), nil)
		if err != nil {
			return err, false
		}
		st.Scope = &anchor
		defer func() { st.Scope = nil }()
		return in.ExecSeq(v.Cmds, st), false

	case script.UnderActiveStmt:
		active, err := in.Browser.ActiveElement()
		if err != nil {
			return core.InteractionError("under-active-element", err), false
		}
		st.Scope = &active
		defer func() { st.Scope = nil }()
		return in.ExecSeq(v.Cmds, st), false

	default:
		return nil, false
	}
}

// ExecSeq runs a command sequence, stopping at the first failure.
func (in *Interpreter) ExecSeq(cmds []script.Cmd, st *State) error {
	for _, c := range cmds {
		if err := in.Exec(c, st); err != nil {
			return err
		}
	}
	return nil
}

// Exec evaluates a single command.
func (in *Interpreter) Exec(cmd script.Cmd, st *State) error {
	switch cmd.Kind {
	case script.CmdURL:
		url := st.Interpolate(cmd.Arg)
		logger.Info("navigate %s", url)
		if err := in.Browser.Navigate(url); err != nil {
			return core.InteractionError("url", err)
		}
		return nil

	case script.CmdRefresh:
		if err := in.Browser.Refresh(); err != nil {
			return core.InteractionError("refresh", err)
		}
		return nil

	case script.CmdLocate:
		return in.doLocate(st, cmd.Arg, true)

	case script.CmdLocateNoScroll:
		return in.doLocate(st, cmd.Arg, false)

	case script.CmdClick:
		return in.withLocated(st, func(el core.ElementRef) error {
			if err := in.centerClick(el); err != nil {
				return err
			}
			st.Active = &el
			return nil
		})

	case script.CmdType:
		text := st.Interpolate(cmd.Arg)
		return in.withLocated(st, func(el core.ElementRef) error {
			if err := in.centerClick(el); err != nil {
				return err
			}
			active, err := in.Browser.ActiveElement()
			if err != nil {
				return core.InteractionError("type", err)
			}
			// Some elements refuse to clear; typing still proceeds.
			if err := in.Browser.Clear(active); err != nil {
				logger.Debug("clear before type failed: %v", err)
			}
			if err := in.Browser.SendKeys(active, text); err != nil {
				return core.InteractionError("type", err)
			}
			st.Active = &active
			return nil
		})

	case script.CmdSelect:
		return in.doSelect(st, cmd.Arg)

	case script.CmdUpload:
		path := st.Interpolate(cmd.Arg)
		return in.withLocated(st, func(el core.ElementRef) error {
			if err := in.Browser.SendKeys(el, path); err != nil {
				return core.InteractionError("upload", err)
			}
			return nil
		})

	case script.CmdReadTo:
		return in.withLocated(st, func(el core.ElementRef) error {
			text, err := in.Browser.Text(el)
			if err != nil {
				return core.InteractionError("read-to", err)
			}
			st.Vars[cmd.Arg] = text
			return nil
		})

	case script.CmdPress:
		code, err := keyFor(st.Interpolate(cmd.Arg))
		if err != nil {
			return core.InteractionError("press", err)
		}
		target := st.Active
		if target == nil {
			active, err := in.Browser.ActiveElement()
			if err != nil {
				return core.InteractionError("press", err)
			}
			target = &active
		}
		if err := in.Browser.SendKeys(*target, code); err != nil {
			return core.InteractionError("press", err)
		}
		return nil

	case script.CmdScreenshot:
		png, err := in.Browser.Screenshot()
		if err != nil {
			return core.InteractionError("screenshot", err)
		}
		if in.OnScreenshot != nil {
			in.OnScreenshot(png)
		}
		return nil

	case script.CmdChill:
		secs, err := strconv.ParseFloat(st.Interpolate(cmd.Arg), 64)
		if err != nil {
			return core.InteractionError("chill", fmt.Errorf("%q is not a number of seconds", cmd.Arg))
		}
		time.Sleep(time.Duration(secs * float64(time.Second)))
		return nil

	case script.CmdDragTo:
		return in.doDrag(st, cmd.Arg)

	case script.CmdAcceptAlert:
		return in.Browser.AcceptAlert()

	case script.CmdDismissAlert:
		return in.Browser.DismissAlert()

	case script.CmdTryAgain:
		return fmt.Errorf("try-again is only valid inside a catch-error block")

	default:
		return fmt.Errorf("unhandled command %q", cmd.Kind)
	}
}

func (in *Interpreter) doLocate(st *State, arg string, scroll bool) error {
	query := st.Interpolate(arg)
	el, err := in.Resolver.Resolve(query, st.Scope)
	if err != nil {
		return err
	}
	st.Located = &el
	st.LastQuery = query
	if scroll {
		if err := in.Browser.ScrollIntoView(el); err != nil {
			logger.Warn("scroll into view failed for %q: %v", query, err)
		}
	}
	if in.Demo {
		if _, err := in.Browser.ExecuteScript(highlightScript, []any{el.ScriptArg()}); err != nil {
			logger.Warn("highlight failed: %v", err)
		}
	}
	return nil
}

func (in *Interpreter) doSelect(st *State, arg string) error {
	text := st.Interpolate(arg)
	return in.withLocated(st, func(el core.ElementRef) error {
		sel, err := in.Resolver.OwningSelect(el)
		if err != nil {
			return core.InteractionError("select", err)
		}
		opt, err := in.Resolver.OptionWithText(sel, text)
		if err != nil {
			return err
		}
		if err := in.Browser.ClickElement(opt); err != nil {
			return core.InteractionError("select", err)
		}
		st.Active = &sel
		return nil
	})
}

func (in *Interpreter) doDrag(st *State, arg string) error {
	query := st.Interpolate(arg)
	return in.withLocated(st, func(src core.ElementRef) error {
		dst, err := in.Resolver.Resolve(query, st.Scope)
		if err != nil {
			return err
		}
		args := []any{src.ScriptArg(), dst.ScriptArg()}
		if _, err := in.Browser.ExecuteScript(dragScript, args); err != nil {
			return core.InteractionError("drag-to", err)
		}
		return nil
	})
}

// centerClick dispatches a pointer click at the geometric center of the
// element's bounding box.
func (in *Interpreter) centerClick(el core.ElementRef) error {
	rect, err := in.Browser.BoundingRect(el)
	if err != nil {
		return core.InteractionError("click", err)
	}
	x, y := rect.Center()
	if err := in.Browser.ClickAt(x, y); err != nil {
		return core.InteractionError("click", err)
	}
	return nil
}

// withLocated runs fn against the currently located element. If the element
// went stale the query is re-resolved against the live page and fn retried
// once.
func (in *Interpreter) withLocated(st *State, fn func(el core.ElementRef) error) error {
	if st.Located == nil {
		return core.ErrNoElementLocated
	}
	err := fn(*st.Located)
	if err != nil && core.IsStale(err) && st.LastQuery != "" {
		logger.Debug("re-resolving stale element %q", st.LastQuery)
		fresh, rerr := in.Resolver.Resolve(st.LastQuery, st.Scope)
		if rerr != nil {
			return err
		}
		st.Located = &fresh
		return fn(fresh)
	}
	return err
}
