package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/webrun/pkg/core"
	"github.com/devicelab-dev/webrun/pkg/executor"
	"github.com/devicelab-dev/webrun/pkg/locator"
	"github.com/devicelab-dev/webrun/pkg/logger"
	"github.com/devicelab-dev/webrun/pkg/script"
	"github.com/devicelab-dev/webrun/pkg/session"
)

var replCommand = &cli.Command{
	Name:   "repl",
	Usage:  "Run statements interactively and build up a script",
	Action: replAction,
}

func replAction(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogFile); err != nil {
		return err
	}
	defer logger.Close()
	logger.SetVerbose(c.Bool("verbose"))

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

	rl, err := readline.New("webrun> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	resolver := locator.New(sess.Client)
	resolver.WaitTimeout = time.Duration(cfg.LocateTimeoutSec) * time.Second
	in := &executor.Interpreter{
		Browser:  sess.Client,
		Resolver: resolver,
		Demo:     c.Bool("demo"),
	}
	st := executor.NewState(nil)

	fmt.Println("Type statements to run them; exit or Ctrl-D to finish.")

	var kept []string
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		parsed, err := script.Parse(line, "<repl>")
		if err != nil {
			fmt.Println(err)
			continue
		}

		ok := true
		for _, stmt := range parsed.Stmts {
			if _, isCatch := stmt.(script.CatchStmt); isCatch {
				fmt.Println("catch-error only takes effect in a saved script; statement kept but not run")
				continue
			}
			entry, err := in.RunStmt(st, stmt)
			switch entry.Status {
			case core.StatusPassed:
				fmt.Println("ok")
			case core.StatusSkipped:
				fmt.Println("condition not met, body skipped")
			default:
				fmt.Println(err)
				ok = false
			}
		}

		if ask(rl, keepPrompt(ok)) {
			kept = append(kept, line)
		}
	}

	if len(kept) == 0 {
		return nil
	}
	if !ask(rl, "Save the script? [y/N] ") {
		return nil
	}
	rl.SetPrompt("File name [repl.wr]: ")
	name, err := rl.Readline()
	if err != nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "repl.wr"
	}
	if err := os.WriteFile(name, []byte(strings.Join(kept, "\n")+"\n"), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d statements)\n", name, len(kept))
	return nil
}

func keepPrompt(ok bool) string {
	if ok {
		return "Keep this statement? [y/N] "
	}
	return "Statement failed. Keep it anyway? [y/N] "
}

// ask reads a one-line yes/no answer, defaulting to no.
func ask(rl *readline.Instance, prompt string) bool {
	rl.SetPrompt(prompt)
	defer rl.SetPrompt("webrun> ")
	answer, err := rl.Readline()
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
