// Package metric provides Prometheus metrics for mapzone.
//
// Plot channels are exported as a gauge holding the latest sample and a
// counter of samples per channel. Zone timings are histograms labelled
// by zone name. The registry can be served at /metrics for the lifetime
// of a run:
//
//   - prometheus.go: registry and recording helpers
//   - server.go: HTTP exposition
package metric
