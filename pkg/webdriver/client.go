package webdriver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devicelab-dev/webrun/pkg/core"
	"github.com/devicelab-dev/webrun/pkg/logger"
)

// Client communicates with a WebDriver remote end (geckodriver or
// chromedriver). It implements core.Browser.
type Client struct {
	http      *http.Client
	baseURL   string
	sessionID string
}

// NewClient creates a client for a driver listening at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
	}
}

// SessionID returns the current session ID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// HasSession returns true if a session is active.
func (c *Client) HasSession() bool {
	return c.sessionID != ""
}

// request makes an HTTP request to the driver and returns the raw value
// field of the response envelope.
func (c *Client) request(method, path string, body interface{}) (json.RawMessage, error) {
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else if method == http.MethodPost {
		// Drivers reject POST without a JSON body.
		reqBody = bytes.NewReader([]byte("{}"))
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("%s %s [%v] %v", method, path, elapsed, err)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("%s %s [%v] %d", method, path, elapsed, resp.StatusCode)

	if resp.StatusCode >= 400 {
		return nil, driverError(respBody, resp.StatusCode)
	}

	var env response
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return env.Value, nil
}

// driverError maps a protocol error payload onto the error taxonomy.
func driverError(body []byte, status int) error {
	var env struct {
		Value errorValue `json:"value"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Value.Error == "" {
		return &core.ExecutionError{
			Category: core.ErrCategoryProtocol,
			Code:     fmt.Sprintf("http %d", status),
			Message:  string(body),
		}
	}

	switch env.Value.Error {
	case "no such element":
		return core.ErrNoSuchElement.WithMessage(env.Value.Message)
	case "stale element reference":
		return core.ErrStaleElement
	case "no such alert":
		return core.ErrNoAlert
	case "invalid session id":
		return core.ErrSessionClosed
	default:
		return &core.ExecutionError{
			Category: core.ErrCategoryProtocol,
			Code:     env.Value.Error,
			Message:  env.Value.Message,
		}
	}
}

// sessionPath returns path with session ID prefix.
func (c *Client) sessionPath(path string) string {
	return fmt.Sprintf("/session/%s%s", c.sessionID, path)
}

// Status checks if the driver is ready to accept a session.
func (c *Client) Status() (bool, error) {
	data, err := c.request(http.MethodGet, "/status", nil)
	if err != nil {
		return false, err
	}

	var value struct {
		Ready   bool   `json:"ready"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return false, err
	}
	return value.Ready, nil
}

// NewSession starts a browser session.
func (c *Client) NewSession(caps Capabilities) error {
	var req sessionRequest
	req.Capabilities.AlwaysMatch = caps

	data, err := c.request(http.MethodPost, "/session", req)
	if err != nil {
		return err
	}

	var value struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("parse session response: %w", err)
	}
	if value.SessionID == "" {
		return fmt.Errorf("no session ID in response")
	}

	c.sessionID = value.SessionID
	return nil
}

// DeleteSession ends the current session.
func (c *Client) DeleteSession() error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.request(http.MethodDelete, c.sessionPath(""), nil)
	c.sessionID = ""
	return err
}

// Close ends the session.
func (c *Client) Close() error {
	return c.DeleteSession()
}
