package main

import (
	"context"
	"errors"
	"os"

	"github.com/indaco/cutrelease/internal/cli"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError("Error: " + err.Error())
		os.Exit(exitCode(err))
	}
}

func runCLI(args []string) error {
	return cli.New(config.Default()).Run(context.Background(), args)
}

// exitCode is 2 for configuration and usage errors, 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, config.ErrInvalidConfig) {
		return 2
	}
	return 1
}
