package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "mapzone"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Plot metrics
	PlotValue   *prometheus.GaugeVec
	PlotSamples *prometheus.CounterVec

	// Event metrics
	Messages     prometheus.Counter
	ZoneDuration *prometheus.HistogramVec

	// Map metrics
	Inserts       prometheus.Counter
	WorkersActive prometheus.Gauge
}

// NewRegistry creates a registry with all mapzone metrics plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		PlotValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "plot_value",
			Help:      "Latest sample written to a plot channel.",
		}, []string{"channel"}),
		PlotSamples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "plot_samples_total",
			Help:      "Number of samples written to a plot channel.",
		}, []string{"channel"}),
		Messages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "messages_total",
			Help:      "Number of text messages emitted.",
		}),
		ZoneDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "zone_duration_seconds",
			Help:      "Duration of instrumented zones.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, 1, 5, 30},
		}, []string{"zone"}),
		Inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "inserts_total",
			Help:      "Number of map inserts performed.",
		}),
		WorkersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "workers_active",
			Help:      "Number of workers currently running.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.PlotValue,
		r.PlotSamples,
		r.Messages,
		r.ZoneDuration,
		r.Inserts,
		r.WorkersActive,
	)

	return r
}

// Gatherer returns the underlying registry for scraping or testing.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordPlot stores a sample on a plot channel.
func (r *Registry) RecordPlot(channel string, value float64) {
	r.PlotValue.WithLabelValues(channel).Set(value)
	r.PlotSamples.WithLabelValues(channel).Inc()
}

// IncMessages counts one emitted text message.
func (r *Registry) IncMessages() {
	r.Messages.Inc()
}

// ObserveZone records the duration of a zone in seconds.
func (r *Registry) ObserveZone(zone string, seconds float64) {
	r.ZoneDuration.WithLabelValues(zone).Observe(seconds)
}

// IncInserts counts one map insert.
func (r *Registry) IncInserts() {
	r.Inserts.Inc()
}

// IncWorkersActive marks a worker as started.
func (r *Registry) IncWorkersActive() {
	r.WorkersActive.Inc()
}

// DecWorkersActive marks a worker as finished.
func (r *Registry) DecWorkersActive() {
	r.WorkersActive.Dec()
}
