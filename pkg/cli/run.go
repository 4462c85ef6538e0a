package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/webrun/pkg/config"
	"github.com/devicelab-dev/webrun/pkg/core"
	"github.com/devicelab-dev/webrun/pkg/datatable"
	"github.com/devicelab-dev/webrun/pkg/executor"
	"github.com/devicelab-dev/webrun/pkg/logger"
	"github.com/devicelab-dev/webrun/pkg/report"
	"github.com/devicelab-dev/webrun/pkg/script"
	"github.com/devicelab-dev/webrun/pkg/session"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run a script file",
	ArgsUsage: "<script.wr>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "datatable",
			Aliases: []string{"t"},
			Usage:   "CSV file; the script runs once per row",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Run name used for report files (default: script name)",
		},
	},
	Action: runAction,
}

// buildConfig merges the workspace config file with CLI flags; flags win.
func buildConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFromDir(".")
	if err != nil {
		return nil, err
	}
	if c.IsSet("browser") {
		cfg.Browser = c.String("browser")
	}
	if c.IsSet("headless") {
		cfg.Headless = c.Bool("headless")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("driver-url") {
		cfg.DriverURL = c.String("driver-url")
	}
	if c.IsSet("driver-path") {
		cfg.DriverPath = c.String("driver-path")
	}
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("datatable") {
		cfg.Datatable = c.String("datatable")
	}
	return cfg, nil
}

func runAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: webrun run <script.wr>")
	}

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		return err
	}
	defer logger.Close()
	logger.SetVerbose(c.Bool("verbose"))

	// Parse before touching the browser so syntax errors fail fast.
	s, err := script.ParseFile(path)
	if err != nil {
		return err
	}

	rows := []map[string]string{nil}
	if cfg.Datatable != "" {
		tbl, err := datatable.Load(cfg.Datatable)
		if err != nil {
			return err
		}
		if len(tbl.Rows) == 0 {
			return fmt.Errorf("%s: datatable has no rows", cfg.Datatable)
		}
		rows = tbl.Rows
	}

	sess, err := session.Start(session.Config{
		Browser:    cfg.Browser,
		Headless:   cfg.Headless,
		DriverURL:  cfg.DriverURL,
		DriverPath: cfg.DriverPath,
		Port:       cfg.Port,
	})
	if err != nil {
		return err
	}
	defer sess.Stop()

	writer, err := report.NewWriter(cfg.OutputDir)
	if err != nil {
		return err
	}

	name := c.String("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var runs []*core.RunRecord
	for i, row := range rows {
		runner := executor.New(sess.Client)
		runner.Name = fmt.Sprintf("%s_run_%d", name, i+1)
		runner.Demo = c.Bool("demo")
		runner.StepDelay = time.Duration(cfg.StepDelayMs) * time.Millisecond
		runner.Resolver.WaitTimeout = time.Duration(cfg.LocateTimeoutSec) * time.Second

		logger.Info("starting run %s", runner.Name)
		rec := runner.Run(c.Context, s, row)
		rec.Browser = cfg.Browser

		if err := writer.Write(rec); err != nil {
			return err
		}
		fmt.Printf("%s: %s (%d passed, %d failed, %d skipped)\n",
			runner.Name, rec.Status, rec.Passed, rec.Failed, rec.Skipped)
		runs = append(runs, rec)
	}

	suite, err := writer.WriteSuite(runs)
	if err != nil {
		return err
	}
	if suite.Status == core.StatusFailed {
		return cli.Exit(fmt.Sprintf("%d of %d runs failed, reports in %s", suite.Failed, len(runs), cfg.OutputDir), 1)
	}
	fmt.Printf("all %d runs passed, reports in %s\n", len(runs), cfg.OutputDir)
	return nil
}
