package session

import (
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver"

	"github.com/devicelab-dev/webrun/pkg/logger"
)

// Minimum driver versions that speak the W3C dialect this client uses.
var driverConstraints = map[string]string{
	BrowserFirefox: ">= 0.30.0",
	BrowserChrome:  ">= 90.0.0",
}

var driverBinaries = map[string]string{
	BrowserFirefox: "geckodriver",
	BrowserChrome:  "chromedriver",
}

var versionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// findDriver locates the driver binary and verifies its version is in the
// supported range.
func findDriver(cfg Config) (string, error) {
	binary := cfg.DriverPath
	if binary == "" {
		name := driverBinaries[cfg.Browser]
		path, err := exec.LookPath(name)
		if err != nil {
			return "", fmt.Errorf("%s not found on PATH, install it or pass --driver-path: %w", name, err)
		}
		binary = path
	}

	version, err := driverVersion(binary)
	if err != nil {
		logger.Warn("could not determine driver version: %v", err)
		return binary, nil
	}
	if err := checkVersion(cfg.Browser, version); err != nil {
		return "", err
	}
	logger.Info("using driver %s (version %s)", binary, version)
	return binary, nil
}

// driverVersion runs the binary with --version and extracts the version
// number from its banner.
func driverVersion(binary string) (string, error) {
	out, err := exec.Command(binary, "--version").Output() //#nosec G204 -- binary comes from PATH lookup or config
	if err != nil {
		return "", fmt.Errorf("run %s --version: %w", binary, err)
	}
	m := versionPattern.FindString(string(out))
	if m == "" {
		return "", fmt.Errorf("no version number in %q", string(out))
	}
	return m, nil
}

func checkVersion(browser, version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parse driver version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(driverConstraints[browser])
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("driver version %s is below the supported range %s", version, driverConstraints[browser])
	}
	return nil
}
