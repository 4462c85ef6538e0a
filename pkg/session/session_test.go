package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		browser string
		version string
		wantErr bool
	}{
		{BrowserFirefox, "0.34.0", false},
		{BrowserFirefox, "0.30.0", false},
		{BrowserFirefox, "0.29.1", true},
		{BrowserChrome, "114.0.5735", false},
		{BrowserChrome, "89.0.1", true},
		{BrowserFirefox, "not-a-version", true},
	}
	for _, tt := range tests {
		err := checkVersion(tt.browser, tt.version)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkVersion(%s, %s) err=%v, wantErr=%v", tt.browser, tt.version, err, tt.wantErr)
		}
	}
}

func TestVersionPattern(t *testing.T) {
	tests := []struct {
		banner string
		want   string
	}{
		{"geckodriver 0.34.0 (c44f0d09630a 2024-01-02)", "0.34.0"},
		{"ChromeDriver 114.0.5735.90 (386bc09e8f4f)", "114.0.5735"},
		{"no digits here", ""},
	}
	for _, tt := range tests {
		if got := versionPattern.FindString(tt.banner); got != tt.want {
			t.Errorf("versionPattern(%q) = %q, want %q", tt.banner, got, tt.want)
		}
	}
}

func TestCapsFor(t *testing.T) {
	caps := capsFor(Config{Browser: BrowserFirefox, Headless: true})
	if caps.BrowserName != "firefox" {
		t.Errorf("expected firefox, got %q", caps.BrowserName)
	}
	if caps.FirefoxOptions == nil || len(caps.FirefoxOptions.Args) != 1 || caps.FirefoxOptions.Args[0] != "-headless" {
		t.Errorf("unexpected firefox options: %+v", caps.FirefoxOptions)
	}
	if caps.ChromeOptions != nil {
		t.Error("firefox caps must not carry chrome options")
	}

	caps = capsFor(Config{Browser: BrowserChrome, Headless: true})
	if caps.ChromeOptions == nil || len(caps.ChromeOptions.Args) != 1 || caps.ChromeOptions.Args[0] != "--headless=new" {
		t.Errorf("unexpected chrome options: %+v", caps.ChromeOptions)
	}
}

func TestStart_WithDriverURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/status":
			json.NewEncoder(w).Encode(map[string]any{"value": map[string]any{"ready": true}})
		case r.Method == http.MethodPost && r.URL.Path == "/session":
			json.NewEncoder(w).Encode(map[string]any{"value": map[string]any{"sessionId": "s-77"}})
		case r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]any{"value": nil})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	s, err := Start(Config{
		Browser:        BrowserFirefox,
		DriverURL:      srv.URL,
		StartupTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if s.Client.SessionID() != "s-77" {
		t.Errorf("expected session s-77, got %q", s.Client.SessionID())
	}
	if s.cmd != nil {
		t.Error("no process should be launched for an external driver URL")
	}
}

func TestStart_UnsupportedBrowser(t *testing.T) {
	if _, err := Start(Config{Browser: "safari"}); err == nil {
		t.Fatal("expected an error for an unsupported browser")
	}
}
