// Package core defines the contracts shared between the script executor,
// the locator engine, and the protocol client: the Browser interface, the
// element reference type, the error taxonomy, and the execution record.
package core

import "encoding/json"

// ElementRef is a weak reference to an element in the live page. It never
// implies ownership of the browser-side object; the page can mutate or drop
// the node at any time, so holders re-resolve on staleness rather than
// caching node identity.
type ElementRef struct {
	ID string `json:"id"`
}

// ElementKey is the W3C WebDriver element identifier key used when element
// references cross the wire.
const ElementKey = "element-6066-11e4-a52e-4f735466cecf"

// ScriptArg renders the element as a script argument the remote end resolves
// back to a DOM node.
func (e ElementRef) ScriptArg() map[string]any {
	return map[string]any{ElementKey: e.ID}
}

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the geometric center of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Find strategies understood by Browser.FindAll. These are the wire-protocol
// location strategies; the locator package layers its own precedence search
// on top of them.
const (
	ByXPath       = "xpath"
	ByCSSSelector = "css selector"
)

// Browser is the contract with the browser-automation protocol client.
// All calls are synchronous; the executor's statement sequencing is the only
// concurrency discipline, and it is sufficient because a single script owns
// the session.
//
// Implemented by webdriver.Client. Mocked in executor and locator tests.
type Browser interface {
	// Navigation
	Navigate(url string) error
	Refresh() error

	// Element finding. A nil scope searches the whole document; a non-nil
	// scope searches relative to that element.
	FindAll(using, value string, scope *ElementRef) ([]ElementRef, error)
	ActiveElement() (ElementRef, error)

	// Element inspection
	TagName(el ElementRef) (string, error)
	Attr(el ElementRef, name string) (string, error)
	Text(el ElementRef) (string, error)
	Displayed(el ElementRef) (bool, error)
	BoundingRect(el ElementRef) (Rect, error)

	// Interaction
	ClickAt(x, y float64) error
	ClickElement(el ElementRef) error
	SendKeys(el ElementRef, text string) error
	Clear(el ElementRef) error
	ScrollIntoView(el ElementRef) error

	// Page-level operations
	Screenshot() ([]byte, error)
	ExecuteScript(script string, args []any) (json.RawMessage, error)
	AcceptAlert() error
	DismissAlert() error
}
