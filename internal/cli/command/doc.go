// Package command provides the CLI applications for the mapzone programs.
//
// This package defines one urfave/cli/v2 App per program:
//
//   - root.go: App construction, global flags
//   - run.go: argument validation and the run itself
//   - runtime.go: configuration, logging and telemetry wiring
//   - summary.go: the run summary printed after the workers join
//
// Each App writes insertion lines to App.Writer and everything else
// (logs, usage, summary) to App.ErrWriter.
package command
