package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "mapzone.logger"
	// runIDKey is the context key for the run id.
	runIDKey contextKey = "mapzone.run_id"
	// workerKey is the context key for the worker name.
	workerKey contextKey = "mapzone.worker"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRunID adds a run id to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run id from context.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithWorker adds a worker name to the context.
func WithWorker(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, workerKey, name)
}

// WorkerFromContext extracts the worker name from context.
func WorkerFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(workerKey).(string); ok {
		return name
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the run id and worker name from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if runID := RunIDFromContext(ctx); runID != "" {
		l = l.With("run_id", runID)
	}

	if worker := WorkerFromContext(ctx); worker != "" {
		l = l.With("worker", worker)
	}

	return l
}
