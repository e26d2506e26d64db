// Package main provides the entry point for mapzone-single.
//
// mapzone-single inserts keys 0..99 into a map on the calling goroutine,
// pausing 100ms after each insert.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapzone-go/internal/cli/command"
)

func main() {
	app := command.SingleApp()

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
