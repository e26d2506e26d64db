// Package main provides the entry point for mapzone-perthread.
//
// mapzone-perthread is mapzone-shared with one plot channel per worker.
// numThreads is bounded by limits.max_plot_channels (16 by default).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapzone-go/internal/cli/command"
)

func main() {
	app := command.PerThreadApp()

	if err := app.Run(os.Args); err != nil {
		code := 1
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(code)
	}
}
