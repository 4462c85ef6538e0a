// Package session manages the WebDriver binary lifecycle: finding the
// driver on the machine, starting it, opening a browser session, and
// tearing everything down.
package session

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/devicelab-dev/webrun/pkg/logger"
	"github.com/devicelab-dev/webrun/pkg/webdriver"
)

// Supported browsers.
const (
	BrowserFirefox = "firefox"
	BrowserChrome  = "chrome"
)

// Config describes how to reach or launch a driver.
type Config struct {
	// Browser is firefox or chrome.
	Browser string

	// Headless starts the browser without a visible window.
	Headless bool

	// DriverURL points at an already-running driver. When set, no process
	// is launched or managed.
	DriverURL string

	// DriverPath overrides the binary looked up on PATH.
	DriverPath string

	// Port for the launched driver. Zero picks the browser's default.
	Port int

	// StartupTimeout bounds the wait for the driver to accept requests.
	StartupTimeout time.Duration
}

// Session is a running driver process (when launched by us) plus an open
// browser session.
type Session struct {
	Client *webdriver.Client

	cmd *exec.Cmd
}

// Start connects to or launches a driver and opens a browser session.
func Start(cfg Config) (*Session, error) {
	if cfg.Browser == "" {
		cfg.Browser = BrowserFirefox
	}
	if cfg.Browser != BrowserFirefox && cfg.Browser != BrowserChrome {
		return nil, fmt.Errorf("unsupported browser %q", cfg.Browser)
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = 20 * time.Second
	}

	s := &Session{}

	baseURL := cfg.DriverURL
	if baseURL == "" {
		binary, err := findDriver(cfg)
		if err != nil {
			return nil, err
		}
		port := cfg.Port
		if port == 0 {
			port = defaultPort(cfg.Browser)
		}
		cmd, err := launch(cfg.Browser, binary, port)
		if err != nil {
			return nil, err
		}
		s.cmd = cmd
		baseURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	}

	s.Client = webdriver.NewClient(baseURL)
	if err := s.awaitReady(cfg.StartupTimeout); err != nil {
		s.Stop()
		return nil, err
	}
	if err := s.Client.NewSession(capsFor(cfg)); err != nil {
		s.Stop()
		return nil, fmt.Errorf("open browser session: %w", err)
	}
	return s, nil
}

// Stop closes the browser session and kills the driver process if this
// session launched one.
func (s *Session) Stop() {
	if s.Client != nil && s.Client.HasSession() {
		if err := s.Client.Close(); err != nil {
			logger.Warn("close session: %v", err)
		}
	}
	if s.cmd != nil && s.cmd.Process != nil {
		if err := s.cmd.Process.Kill(); err != nil {
			logger.Warn("kill driver: %v", err)
		}
		s.cmd.Wait()
		s.cmd = nil
	}
}

func defaultPort(browser string) int {
	if browser == BrowserChrome {
		return 9515
	}
	return 4444
}

func launch(browser, binary string, port int) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	if browser == BrowserChrome {
		cmd = exec.Command(binary, fmt.Sprintf("--port=%d", port)) //#nosec G204 -- binary is validated above
	} else {
		cmd = exec.Command(binary, "--port", fmt.Sprintf("%d", port)) //#nosec G204 -- binary is validated above
	}
	cmd.Stdout = logger.GetWriter()
	cmd.Stderr = logger.GetWriter()

	logger.Info("starting %s on port %d", binary, port)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start driver %s: %w", binary, err)
	}
	return cmd, nil
}

// awaitReady polls the driver's status endpoint until it reports ready.
func (s *Session) awaitReady(timeout time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = timeout

	err := backoff.Retry(func() error {
		ready, err := s.Client.Status()
		if err != nil {
			return err
		}
		if !ready {
			return fmt.Errorf("driver not ready")
		}
		return nil
	}, bo)
	if err != nil {
		return fmt.Errorf("driver did not become ready within %s: %w", timeout, err)
	}
	return nil
}

func capsFor(cfg Config) webdriver.Capabilities {
	caps := webdriver.Capabilities{BrowserName: cfg.Browser}
	if cfg.Browser == BrowserChrome {
		opts := &webdriver.BrowserOptions{}
		if cfg.Headless {
			opts.Args = append(opts.Args, "--headless=new")
		}
		caps.ChromeOptions = opts
	} else {
		opts := &webdriver.BrowserOptions{}
		if cfg.Headless {
			opts.Args = append(opts.Args, "-headless")
		}
		caps.FirefoxOptions = opts
	}
	return caps
}
