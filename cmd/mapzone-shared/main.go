// Package main provides the entry point for mapzone-shared.
//
// mapzone-shared starts numThreads workers that insert disjoint key ranges
// into one map and all plot to the "Memory Address" channel.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapzone-go/internal/cli/command"
)

func main() {
	app := command.SharedApp()

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
