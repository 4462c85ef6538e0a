package webdriver

// NewTestClient creates a Client pointed at a test server with a session
// already assigned. This should only be used in tests.
func NewTestClient(baseURL, sessionID string) *Client {
	c := NewClient(baseURL)
	c.sessionID = sessionID
	return c
}
