package profiler

import (
	"context"
	"time"

	"github.com/yndnr/mapzone-go/internal/telemetry/logger"
	"github.com/yndnr/mapzone-go/internal/telemetry/metric"
	"github.com/yndnr/mapzone-go/internal/telemetry/tracer"
)

// Telemetry is a Sink backed by the tracer, metric registry and logger.
// Any of the three may be nil.
type Telemetry struct {
	tracer  *tracer.Provider
	metrics *metric.Registry
	log     logger.Logger
}

var _ Sink = (*Telemetry)(nil)

// NewTelemetry creates a Telemetry sink.
func NewTelemetry(tp *tracer.Provider, reg *metric.Registry, log logger.Logger) *Telemetry {
	return &Telemetry{
		tracer:  tp,
		metrics: reg,
		log:     log,
	}
}

type telemetryZone struct {
	name    string
	thread  string
	start   time.Time
	span    tracer.Span
	metrics *metric.Registry
	log     logger.Logger
}

// RecordError sets the span status to error and logs err.
func (z *telemetryZone) RecordError(err error) {
	if err == nil {
		return
	}
	z.span.RecordError(err)
	if z.log != nil {
		z.log.Error("zone failed", "zone", z.name, "worker", z.thread, "error", err)
	}
}

func (z *telemetryZone) End() {
	z.span.End()
	if z.metrics != nil {
		z.metrics.ObserveZone(z.name, time.Since(z.start).Seconds())
	}
}

// BeginZone opens a span named after the zone, tagged with the worker name.
func (t *Telemetry) BeginZone(ctx context.Context, name string) (context.Context, Zone) {
	ctx, span := t.tracer.StartSpan(ctx, name)
	thread := ThreadName(ctx)
	if thread != "" {
		span.SetAttribute("thread.name", thread)
	}
	return ctx, &telemetryZone{
		name:    name,
		thread:  thread,
		start:   time.Now(),
		span:    span,
		metrics: t.metrics,
		log:     t.log,
	}
}

// Plot records the sample on the channel's gauge and as an event on the current span.
func (t *Telemetry) Plot(ctx context.Context, channel string, value int64) {
	if t.metrics != nil {
		t.metrics.RecordPlot(channel, float64(value))
	}
	tracer.FromContext(ctx).AddEvent("plot", map[string]any{
		"plot.channel": channel,
		"plot.value":   value,
	})
}

// Message adds the text as an event on the current span and logs it at debug level.
func (t *Telemetry) Message(ctx context.Context, text string) {
	if t.metrics != nil {
		t.metrics.IncMessages()
	}
	if t.log != nil {
		t.log.Debug(text, "worker", ThreadName(ctx))
	}
	tracer.FromContext(ctx).AddEvent("message", map[string]any{
		"message.text": text,
	})
}

// SetThreadName stores the worker name in ctx for later zones.
func (t *Telemetry) SetThreadName(ctx context.Context, name string) context.Context {
	if t.log != nil {
		t.log.Debug("worker named", "worker", name)
	}
	return withThreadName(ctx, name)
}
