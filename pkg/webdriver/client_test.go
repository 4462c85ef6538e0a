package webdriver

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devicelab-dev/webrun/pkg/core"
)

func respond(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"value": value})
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		respond(w, map[string]any{"ready": true, "message": "ready"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ready, err := c.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ready {
		t.Error("expected ready")
	}
}

func TestNewSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/session" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Capabilities.AlwaysMatch.BrowserName != "firefox" {
			t.Errorf("expected browserName firefox, got %q", req.Capabilities.AlwaysMatch.BrowserName)
		}
		respond(w, map[string]any{"sessionId": "s-123", "capabilities": map[string]any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.NewSession(Capabilities{
		BrowserName:    "firefox",
		FirefoxOptions: &BrowserOptions{Args: []string{"-headless"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SessionID() != "s-123" {
		t.Errorf("expected session s-123, got %q", c.SessionID())
	}
}

func TestFindAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req findRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Using != core.ByXPath || req.Value != `//button` {
			t.Errorf("unexpected locator: %+v", req)
		}
		switch r.URL.Path {
		case "/session/s1/elements":
			respond(w, []map[string]string{
				{core.ElementKey: "el-1"},
				{core.ElementKey: "el-2"},
			})
		case "/session/s1/element/scope-1/elements":
			respond(w, []map[string]string{{core.ElementKey: "el-3"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewTestClient(srv.URL, "s1")

	els, err := c.FindAll(core.ByXPath, `//button`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 || els[0].ID != "el-1" || els[1].ID != "el-2" {
		t.Errorf("unexpected elements: %+v", els)
	}

	scope := core.ElementRef{ID: "scope-1"}
	els, err = c.FindAll(core.ByXPath, `//button`, &scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 1 || els[0].ID != "el-3" {
		t.Errorf("unexpected scoped elements: %+v", els)
	}
}

func TestClickAt(t *testing.T) {
	var sawActions, sawRelease bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/s1/actions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPost:
			sawActions = true
			var payload struct {
				Actions []struct {
					Type    string `json:"type"`
					Actions []struct {
						Type string `json:"type"`
						X    int    `json:"x"`
						Y    int    `json:"y"`
					} `json:"actions"`
				} `json:"actions"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("bad actions payload: %v", err)
			}
			seq := payload.Actions[0]
			if seq.Type != "pointer" {
				t.Errorf("expected pointer actions, got %q", seq.Type)
			}
			if len(seq.Actions) != 3 {
				t.Fatalf("expected move+down+up, got %d actions", len(seq.Actions))
			}
			if seq.Actions[0].X != 25 || seq.Actions[0].Y != 40 {
				t.Errorf("expected move to (25, 40), got (%d, %d)", seq.Actions[0].X, seq.Actions[0].Y)
			}
		case http.MethodDelete:
			sawRelease = true
		}
		respond(w, nil)
	}))
	defer srv.Close()

	c := NewTestClient(srv.URL, "s1")
	if err := c.ClickAt(25.4, 39.6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sawActions || !sawRelease {
		t.Errorf("expected actions post and release, got post=%v release=%v", sawActions, sawRelease)
	}
}

func TestScreenshot(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, base64.StdEncoding.EncodeToString(png))
	}))
	defer srv.Close()

	c := NewTestClient(srv.URL, "s1")
	got, err := c.Screenshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(png) {
		t.Errorf("screenshot bytes mismatch: %v", got)
	}
}

func TestAttr_Null(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, nil)
	}))
	defer srv.Close()

	c := NewTestClient(srv.URL, "s1")
	v, err := c.Attr(core.ElementRef{ID: "e1"}, "placeholder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty string for a missing attribute, got %q", v)
	}
}

func TestSendKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/s1/element/e1/value" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req keysRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Text != "hello" {
			t.Errorf("expected text hello, got %q", req.Text)
		}
		respond(w, nil)
	}))
	defer srv.Close()

	c := NewTestClient(srv.URL, "s1")
	if err := c.SendKeys(core.ElementRef{ID: "e1"}, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		driverErr string
		status    int
		check     func(error) bool
		desc      string
	}{
		{"no such element", 404, func(err error) bool {
			return core.CategoryOf(err) == core.ErrCategoryLocate
		}, "locate category"},
		{"stale element reference", 404, core.IsStale, "stale detection"},
		{"no such alert", 404, func(err error) bool {
			return core.CategoryOf(err) == core.ErrCategoryAlert
		}, "alert category"},
		{"unexpected alert open", 500, func(err error) bool {
			return core.CategoryOf(err) == core.ErrCategoryProtocol
		}, "protocol fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.driverErr, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"value":{"error":%q,"message":"boom"}}`, tt.driverErr)
			}))
			defer srv.Close()

			c := NewTestClient(srv.URL, "s1")
			err := c.ClickElement(core.ElementRef{ID: "e1"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.check(err) {
				t.Errorf("%s failed for %v", tt.desc, err)
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/session/s1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		respond(w, nil)
	}))
	defer srv.Close()

	c := NewTestClient(srv.URL, "s1")
	if err := c.DeleteSession(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HasSession() {
		t.Error("session should be cleared")
	}
}
