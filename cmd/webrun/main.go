package main

import "github.com/devicelab-dev/webrun/pkg/cli"

func main() {
	cli.Execute()
}
