package webdriver

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/devicelab-dev/webrun/pkg/core"
)

// scrollScript centers an element in the viewport.
const scrollScript = `arguments[0].scrollIntoView({block: "center", inline: "center"});`

// Navigate loads a URL in the session's window.
func (c *Client) Navigate(target string) error {
	_, err := c.request(http.MethodPost, c.sessionPath("/url"), map[string]string{"url": target})
	return err
}

// Refresh reloads the current page.
func (c *Client) Refresh() error {
	_, err := c.request(http.MethodPost, c.sessionPath("/refresh"), nil)
	return err
}

// FindAll returns every element matching the locator. A nil scope searches
// the whole document; otherwise the search starts from the scope element.
// An empty result is not an error.
func (c *Client) FindAll(using, value string, scope *core.ElementRef) ([]core.ElementRef, error) {
	path := c.sessionPath("/elements")
	if scope != nil {
		path = c.sessionPath("/element/" + scope.ID + "/elements")
	}

	data, err := c.request(http.MethodPost, path, findRequest{Using: using, Value: value})
	if err != nil {
		if core.CategoryOf(err) == core.ErrCategoryLocate {
			return nil, nil
		}
		return nil, err
	}

	var raw []map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse elements response: %w", err)
	}

	els := make([]core.ElementRef, 0, len(raw))
	for _, m := range raw {
		if id, ok := m[core.ElementKey]; ok {
			els = append(els, core.ElementRef{ID: id})
		}
	}
	return els, nil
}

// ActiveElement returns the element the browser reports as focused.
func (c *Client) ActiveElement() (core.ElementRef, error) {
	data, err := c.request(http.MethodGet, c.sessionPath("/element/active"), nil)
	if err != nil {
		return core.ElementRef{}, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.ElementRef{}, fmt.Errorf("parse active element: %w", err)
	}
	id, ok := raw[core.ElementKey]
	if !ok {
		return core.ElementRef{}, core.ErrNoActiveElement
	}
	return core.ElementRef{ID: id}, nil
}

// TagName returns the element's tag name, lowercased by the driver.
func (c *Client) TagName(el core.ElementRef) (string, error) {
	return c.stringValue(http.MethodGet, "/element/"+el.ID+"/name")
}

// Attr returns an attribute value, or an empty string when absent.
func (c *Client) Attr(el core.ElementRef, name string) (string, error) {
	data, err := c.request(http.MethodGet, c.sessionPath("/element/"+el.ID+"/attribute/"+url.PathEscape(name)), nil)
	if err != nil {
		return "", err
	}
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("parse attribute: %w", err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// Text returns the element's rendered text.
func (c *Client) Text(el core.ElementRef) (string, error) {
	return c.stringValue(http.MethodGet, "/element/"+el.ID+"/text")
}

// Displayed reports whether the element is rendered.
func (c *Client) Displayed(el core.ElementRef) (bool, error) {
	data, err := c.request(http.MethodGet, c.sessionPath("/element/"+el.ID+"/displayed"), nil)
	if err != nil {
		return false, err
	}
	var shown bool
	if err := json.Unmarshal(data, &shown); err != nil {
		return false, fmt.Errorf("parse displayed: %w", err)
	}
	return shown, nil
}

// BoundingRect returns the element's bounding box in viewport coordinates.
func (c *Client) BoundingRect(el core.ElementRef) (core.Rect, error) {
	data, err := c.request(http.MethodGet, c.sessionPath("/element/"+el.ID+"/rect"), nil)
	if err != nil {
		return core.Rect{}, err
	}
	var r rectValue
	if err := json.Unmarshal(data, &r); err != nil {
		return core.Rect{}, fmt.Errorf("parse rect: %w", err)
	}
	return core.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, nil
}

// ClickElement issues an element-targeted click. Interactive commands use
// pointer actions instead; this serves option picking, where a pointer click
// cannot reach into a closed dropdown.
func (c *Client) ClickElement(el core.ElementRef) error {
	_, err := c.request(http.MethodPost, c.sessionPath("/element/"+el.ID+"/click"), nil)
	return err
}

// SendKeys types text into the element. For file inputs the text is the
// file path.
func (c *Client) SendKeys(el core.ElementRef, text string) error {
	_, err := c.request(http.MethodPost, c.sessionPath("/element/"+el.ID+"/value"), keysRequest{Text: text})
	return err
}

// Clear empties an editable element.
func (c *Client) Clear(el core.ElementRef) error {
	_, err := c.request(http.MethodPost, c.sessionPath("/element/"+el.ID+"/clear"), nil)
	return err
}

// ScrollIntoView centers the element in the viewport.
func (c *Client) ScrollIntoView(el core.ElementRef) error {
	_, err := c.ExecuteScript(scrollScript, []any{el.ScriptArg()})
	return err
}

// Screenshot captures the viewport as PNG bytes.
func (c *Client) Screenshot() ([]byte, error) {
	b64, err := c.stringValue(http.MethodGet, "/screenshot")
	if err != nil {
		return nil, err
	}
	png, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return png, nil
}

// ExecuteScript runs JavaScript in the page and returns the raw result.
func (c *Client) ExecuteScript(script string, args []any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	return c.request(http.MethodPost, c.sessionPath("/execute/sync"), scriptRequest{Script: script, Args: args})
}

// AcceptAlert accepts the open alert.
func (c *Client) AcceptAlert() error {
	_, err := c.request(http.MethodPost, c.sessionPath("/alert/accept"), nil)
	return err
}

// DismissAlert dismisses the open alert.
func (c *Client) DismissAlert() error {
	_, err := c.request(http.MethodPost, c.sessionPath("/alert/dismiss"), nil)
	return err
}

func (c *Client) stringValue(method, path string) (string, error) {
	data, err := c.request(method, c.sessionPath(path), nil)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return s, nil
}
