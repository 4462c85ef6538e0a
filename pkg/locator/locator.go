// Package locator resolves a human-meaningful query string to a single
// element reference using a fixed precedence of search strategies, with
// scoped ancestor-walking search and label-to-control swapping.
package locator

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/devicelab-dev/webrun/pkg/core"
)

// DefaultWaitTimeout bounds the implicit wait for a document-scope search.
const DefaultWaitTimeout = 10 * time.Second

// Resolver runs the precedence search against a browser session. One
// resolver serves one session; it holds no per-query state.
type Resolver struct {
	Browser core.Browser

	// WaitTimeout bounds the implicit wait of a document-scope search. Zero
	// or negative disables waiting and makes a single pass.
	WaitTimeout time.Duration
}

// New returns a resolver with the default wait timeout.
func New(b core.Browser) *Resolver {
	return &Resolver{Browser: b, WaitTimeout: DefaultWaitTimeout}
}

// Resolve returns the first element matching query by strategy precedence.
// With a scope anchor the search starts at the anchor and walks upward,
// re-running the full precedence at each ancestor level; the anchor changes
// the starting point, not the search boundary. Only the final document-scope
// search waits for the element to appear.
func (r *Resolver) Resolve(query string, scope *core.ElementRef) (core.ElementRef, error) {
	if scope != nil {
		level := *scope
		for {
			if el, ok := r.pass(query, &level); ok {
				return el, nil
			}
			parent, ok := r.parentOf(level)
			if !ok {
				break
			}
			level = parent
		}
	}

	if r.WaitTimeout <= 0 {
		if el, ok := r.pass(query, nil); ok {
			return el, nil
		}
		return core.ElementRef{}, core.LocateError(query)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = r.WaitTimeout

	var found core.ElementRef
	err := backoff.Retry(func() error {
		el, ok := r.pass(query, nil)
		if !ok {
			return errors.New("not yet present")
		}
		found = el
		return nil
	}, bo)
	if err != nil {
		return core.ElementRef{}, core.LocateError(query)
	}
	return found, nil
}

// pass runs every probe once, in precedence order, against one search
// context. It returns the first acceptable candidate.
func (r *Resolver) pass(query string, scope *core.ElementRef) (core.ElementRef, bool) {
	for _, p := range probes() {
		expr := p.build(query)
		if p.raw && scope != nil {
			// An absolute query would escape the anchor element.
			expr = "." + expr
		}
		els, err := r.Browser.FindAll(core.ByXPath, expr, scope)
		if err != nil {
			// A query that is not valid XPath only disqualifies the raw
			// fallback probe, not the run.
			continue
		}
		for _, el := range els {
			candidate := el
			if p.swapLabel {
				ctrl, ok := r.controlFor(el)
				if !ok {
					continue
				}
				candidate = ctrl
			}
			if !p.hiddenOK {
				shown, err := r.Browser.Displayed(candidate)
				if err != nil || !shown {
					continue
				}
			}
			return candidate, true
		}
	}
	return core.ElementRef{}, false
}

// parentOf steps one level up the tree. It reports false at the root.
func (r *Resolver) parentOf(el core.ElementRef) (core.ElementRef, bool) {
	parents, err := r.Browser.FindAll(core.ByXPath, "..", &el)
	if err != nil || len(parents) == 0 {
		return core.ElementRef{}, false
	}
	if parents[0].ID == el.ID {
		return core.ElementRef{}, false
	}
	return parents[0], true
}
