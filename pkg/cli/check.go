package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/webrun/pkg/validator"
)

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "Validate scripts without running them",
	ArgsUsage: "<script.wr | directory>",
	Action:    checkAction,
}

func checkAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: webrun check <script.wr | directory>")
	}

	result := validator.Validate(path)
	for _, err := range result.Errors {
		fmt.Println(err)
	}
	if !result.IsValid() {
		return cli.Exit(fmt.Sprintf("%d problem(s) in %d file(s)", len(result.Errors), len(result.Files)), 1)
	}
	fmt.Printf("%d file(s) OK\n", len(result.Files))
	return nil
}
