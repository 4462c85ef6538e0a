// Package mock provides a mock browser for testing without a real driver.
package mock

import (
	"encoding/json"
	"fmt"

	"github.com/devicelab-dev/webrun/pkg/core"
)

// Browser is a mock implementation of core.Browser. Each method delegates to
// the matching Func field when set and otherwise returns a zero value. Every
// call is appended to Calls for ordering assertions.
type Browser struct {
	NavigateFunc       func(url string) error
	RefreshFunc        func() error
	FindAllFunc        func(using, value string, scope *core.ElementRef) ([]core.ElementRef, error)
	ActiveElementFunc  func() (core.ElementRef, error)
	TagNameFunc        func(el core.ElementRef) (string, error)
	AttrFunc           func(el core.ElementRef, name string) (string, error)
	TextFunc           func(el core.ElementRef) (string, error)
	DisplayedFunc      func(el core.ElementRef) (bool, error)
	BoundingRectFunc   func(el core.ElementRef) (core.Rect, error)
	ClickAtFunc        func(x, y float64) error
	ClickElementFunc   func(el core.ElementRef) error
	SendKeysFunc       func(el core.ElementRef, text string) error
	ClearFunc          func(el core.ElementRef) error
	ScrollIntoViewFunc func(el core.ElementRef) error
	ScreenshotFunc     func() ([]byte, error)
	ExecuteScriptFunc  func(script string, args []any) (json.RawMessage, error)
	AcceptAlertFunc    func() error
	DismissAlertFunc   func() error

	Calls []string
}

func (b *Browser) record(format string, args ...any) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Browser) Navigate(url string) error {
	b.record("Navigate(%s)", url)
	if b.NavigateFunc != nil {
		return b.NavigateFunc(url)
	}
	return nil
}

func (b *Browser) Refresh() error {
	b.record("Refresh()")
	if b.RefreshFunc != nil {
		return b.RefreshFunc()
	}
	return nil
}

func (b *Browser) FindAll(using, value string, scope *core.ElementRef) ([]core.ElementRef, error) {
	if scope != nil {
		b.record("FindAll(%s, %s, %s)", using, value, scope.ID)
	} else {
		b.record("FindAll(%s, %s)", using, value)
	}
	if b.FindAllFunc != nil {
		return b.FindAllFunc(using, value, scope)
	}
	return nil, nil
}

func (b *Browser) ActiveElement() (core.ElementRef, error) {
	b.record("ActiveElement()")
	if b.ActiveElementFunc != nil {
		return b.ActiveElementFunc()
	}
	return core.ElementRef{ID: "active"}, nil
}

func (b *Browser) TagName(el core.ElementRef) (string, error) {
	b.record("TagName(%s)", el.ID)
	if b.TagNameFunc != nil {
		return b.TagNameFunc(el)
	}
	return "div", nil
}

func (b *Browser) Attr(el core.ElementRef, name string) (string, error) {
	b.record("Attr(%s, %s)", el.ID, name)
	if b.AttrFunc != nil {
		return b.AttrFunc(el, name)
	}
	return "", nil
}

func (b *Browser) Text(el core.ElementRef) (string, error) {
	b.record("Text(%s)", el.ID)
	if b.TextFunc != nil {
		return b.TextFunc(el)
	}
	return "", nil
}

func (b *Browser) Displayed(el core.ElementRef) (bool, error) {
	b.record("Displayed(%s)", el.ID)
	if b.DisplayedFunc != nil {
		return b.DisplayedFunc(el)
	}
	return true, nil
}

func (b *Browser) BoundingRect(el core.ElementRef) (core.Rect, error) {
	b.record("BoundingRect(%s)", el.ID)
	if b.BoundingRectFunc != nil {
		return b.BoundingRectFunc(el)
	}
	return core.Rect{X: 0, Y: 0, Width: 10, Height: 10}, nil
}

func (b *Browser) ClickAt(x, y float64) error {
	b.record("ClickAt(%g, %g)", x, y)
	if b.ClickAtFunc != nil {
		return b.ClickAtFunc(x, y)
	}
	return nil
}

func (b *Browser) ClickElement(el core.ElementRef) error {
	b.record("ClickElement(%s)", el.ID)
	if b.ClickElementFunc != nil {
		return b.ClickElementFunc(el)
	}
	return nil
}

func (b *Browser) SendKeys(el core.ElementRef, text string) error {
	b.record("SendKeys(%s, %s)", el.ID, text)
	if b.SendKeysFunc != nil {
		return b.SendKeysFunc(el, text)
	}
	return nil
}

func (b *Browser) Clear(el core.ElementRef) error {
	b.record("Clear(%s)", el.ID)
	if b.ClearFunc != nil {
		return b.ClearFunc(el)
	}
	return nil
}

func (b *Browser) ScrollIntoView(el core.ElementRef) error {
	b.record("ScrollIntoView(%s)", el.ID)
	if b.ScrollIntoViewFunc != nil {
		return b.ScrollIntoViewFunc(el)
	}
	return nil
}

func (b *Browser) Screenshot() ([]byte, error) {
	b.record("Screenshot()")
	if b.ScreenshotFunc != nil {
		return b.ScreenshotFunc()
	}
	return []byte("png"), nil
}

func (b *Browser) ExecuteScript(script string, args []any) (json.RawMessage, error) {
	b.record("ExecuteScript(%s)", script)
	if b.ExecuteScriptFunc != nil {
		return b.ExecuteScriptFunc(script, args)
	}
	return json.RawMessage("null"), nil
}

func (b *Browser) AcceptAlert() error {
	b.record("AcceptAlert()")
	if b.AcceptAlertFunc != nil {
		return b.AcceptAlertFunc()
	}
	return nil
}

func (b *Browser) DismissAlert() error {
	b.record("DismissAlert()")
	if b.DismissAlertFunc != nil {
		return b.DismissAlertFunc()
	}
	return nil
}
