// Package webdriver provides an HTTP client for the W3C WebDriver protocol.
package webdriver

import "encoding/json"

// response is the standard WebDriver response envelope. The value is kept
// raw so each call site can unmarshal its own shape.
type response struct {
	Value json.RawMessage `json:"value"`
}

// errorValue represents a protocol-level error payload.
type errorValue struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

// BrowserOptions carries vendor-specific capabilities for one browser.
type BrowserOptions struct {
	Args   []string `json:"args,omitempty"`
	Binary string   `json:"binary,omitempty"`
}

// Capabilities for session creation.
type Capabilities struct {
	BrowserName    string          `json:"browserName,omitempty"`
	FirefoxOptions *BrowserOptions `json:"moz:firefoxOptions,omitempty"`
	ChromeOptions  *BrowserOptions `json:"goog:chromeOptions,omitempty"`
}

// sessionRequest for creating a session.
type sessionRequest struct {
	Capabilities struct {
		AlwaysMatch Capabilities `json:"alwaysMatch"`
	} `json:"capabilities"`
}

// findRequest for finding elements.
type findRequest struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// keysRequest for sending keys to an element.
type keysRequest struct {
	Text string `json:"text"`
}

// scriptRequest for execute/sync.
type scriptRequest struct {
	Script string `json:"script"`
	Args   []any  `json:"args"`
}

// rectValue is the element rect payload.
type rectValue struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
