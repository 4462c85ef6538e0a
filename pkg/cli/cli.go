// Package cli provides the command-line interface for webrun.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "browser",
		Aliases: []string{"b"},
		Usage:   "Browser to drive (firefox, chrome)",
		EnvVars: []string{"WEBRUN_BROWSER"},
	},
	&cli.BoolFlag{
		Name:    "headless",
		Usage:   "Run the browser without a window",
		EnvVars: []string{"WEBRUN_HEADLESS"},
	},
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Directory for reports and screenshots",
		EnvVars: []string{"WEBRUN_OUTPUT"},
	},
	&cli.StringFlag{
		Name:    "driver-url",
		Usage:   "URL of an already-running WebDriver server",
		EnvVars: []string{"WEBRUN_DRIVER_URL"},
	},
	&cli.StringFlag{
		Name:    "driver-path",
		Usage:   "Path to the driver binary (default: looked up on PATH)",
		EnvVars: []string{"WEBRUN_DRIVER_PATH"},
	},
	&cli.IntFlag{
		Name:  "port",
		Usage: "Port for the launched driver",
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Mirror the run log to stderr",
		EnvVars: []string{"WEBRUN_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:  "demo",
		Usage: "Outline each located element so a watcher can follow along",
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "webrun",
		Usage:   "Plain-language browser UI test runner",
		Version: Version,
		Description: `webrun executes plain-text browser automation scripts
against Firefox or Chrome through WebDriver.

Examples:
  webrun run login.wr
  webrun run login.wr --datatable users.csv --headless
  webrun check scripts/
  webrun repl`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			runCommand,
			checkCommand,
			replCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
