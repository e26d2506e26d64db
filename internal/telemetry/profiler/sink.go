package profiler

import "context"

// Zone names.
const (
	ZoneInsert   = "Insert Element"
	ZoneWorkload = "Simulate Workload"
	ZoneBatch    = "Process Map Inserts"
)

// Sink receives profiling events.
type Sink interface {
	// BeginZone opens a named zone. The returned Zone must be ended.
	BeginZone(ctx context.Context, name string) (context.Context, Zone)
	// Plot appends a numeric sample to a plot channel.
	Plot(ctx context.Context, channel string, value int64)
	// Message emits a short text event.
	Message(ctx context.Context, text string)
	// SetThreadName names the worker that owns ctx.
	SetThreadName(ctx context.Context, name string) context.Context
}

// Zone is an open zone.
type Zone interface {
	End()
	// RecordError marks the zone as failed. It must be called before End.
	RecordError(err error)
}

// Noop is a Sink that discards every event.
type Noop struct{}

var _ Sink = Noop{}

type noopZone struct{}

func (noopZone) End()              {}
func (noopZone) RecordError(error) {}

// BeginZone implements Sink.
func (Noop) BeginZone(ctx context.Context, _ string) (context.Context, Zone) {
	return ctx, noopZone{}
}

// Plot implements Sink.
func (Noop) Plot(context.Context, string, int64) {}

// Message implements Sink.
func (Noop) Message(context.Context, string) {}

// SetThreadName implements Sink.
func (Noop) SetThreadName(ctx context.Context, _ string) context.Context {
	return ctx
}
