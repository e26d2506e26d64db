// Package profiler defines the write-only instrumentation sink used by
// the inserters, and its implementations:
//
//   - Noop: discards everything
//   - Recorder: keeps every event in memory
//   - Telemetry: zones become OpenTelemetry spans, plots and zone timings
//     become Prometheus metrics, messages become span events and debug logs
//
// The core never reads from a Sink, so swapping in Noop changes only
// what is reported, never what is computed.
package profiler
