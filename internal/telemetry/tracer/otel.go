package tracer

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the tracer name used for all zones.
const InstrumentationName = "github.com/yndnr/mapzone-go"

// Provider manages the OpenTelemetry tracer provider.
type Provider struct {
	tp       *sdktrace.TracerProvider
	tracer   trace.Tracer
	shutdown sync.Once
	err      error
}

// Option configures a Provider.
type Option func(*options)

type options struct {
	writer     io.Writer
	processors []sdktrace.SpanProcessor
	attrs      []attribute.KeyValue
}

// WithWriter exports finished spans as JSON lines to w.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithSpanProcessor registers an additional span processor.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) {
		o.processors = append(o.processors, sp)
	}
}

// WithAttributes adds resource attributes (e.g. the run id).
func WithAttributes(kv map[string]string) Option {
	return func(o *options) {
		for k, v := range kv {
			o.attrs = append(o.attrs, attribute.String(k, v))
		}
	}
}

// New creates a new tracer provider.
func New(serviceName string, opts ...Option) (*Provider, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	attrs := append([]attribute.KeyValue{attribute.String("service.name", serviceName)}, o.attrs...)

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attrs...)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if o.writer != nil {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(o.writer))
		if err != nil {
			return nil, fmt.Errorf("create span exporter: %w", err)
		}
		// Synchronous export keeps the trace file in step with stdout.
		tpOpts = append(tpOpts, sdktrace.WithSyncer(exp))
	}

	for _, sp := range o.processors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)

	return &Provider{
		tp:     tp,
		tracer: tp.Tracer(InstrumentationName),
	}, nil
}

// Shutdown flushes and shuts down the tracer provider. Safe to call more than once.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	p.shutdown.Do(func() {
		p.err = p.tp.Shutdown(ctx)
	})
	return p.err
}

// StartSpan starts a new span as a child of any span in ctx.
func (p *Provider) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	if p == nil || p.tracer == nil {
		return ctx, noopSpan{}
	}
	ctx, span := p.tracer.Start(ctx, name)
	return ctx, otelSpan{span: span}
}

// FromContext returns the span stored in ctx, or a no-op span if there is none.
func FromContext(ctx context.Context) Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return noopSpan{}
	}
	return otelSpan{span: span}
}

// Span represents a trace span.
type Span interface {
	End()
	SetAttribute(key string, value any)
	AddEvent(name string, attrs map[string]any)
	RecordError(err error)
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End() {
	s.span.End()
}

func (s otelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s otelSpan) AddEvent(name string, attrs map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, toAttribute(k, v))
	}
	s.span.AddEvent(name, trace.WithAttributes(kvs...))
}

func (s otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// toAttribute converts a Go value into an attribute, falling back to its
// string form for unsupported types.
func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case uint64:
		// Attributes have no unsigned type; keep the exact value as hex.
		return attribute.String(key, fmt.Sprintf("0x%x", v))
	case float64:
		return attribute.Float64(key, v)
	case nil:
		return attribute.String(key, "")
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

type noopSpan struct{}

func (noopSpan) End()                                   {}
func (noopSpan) SetAttribute(key string, value any)     {}
func (noopSpan) AddEvent(name string, _ map[string]any) {}
func (noopSpan) RecordError(err error)                  {}
