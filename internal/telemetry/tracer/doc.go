// Package tracer provides zone tracing for mapzone.
//
// Zones are OpenTelemetry spans. A Provider owns an SDK tracer provider
// and, optionally, a stdout exporter that writes finished spans as JSON
// to a file or stream:
//
//   - otel.go: provider configuration, span wrapper, shutdown
//
// Without an exporter spans are still created (so attributes and events
// can be inspected through a span processor) but nothing is written.
package tracer
