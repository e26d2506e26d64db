// Package logger provides structured logging for mapzone.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, JSON/text handlers, dynamic level
//   - context.go: context propagation of the logger, run id and worker name
//
// Logs are written to stderr by default so that stdout carries only the
// per-insert report lines.
package logger
