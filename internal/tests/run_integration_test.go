// Package tests provides end-to-end tests that run the coordinator with
// every telemetry backend attached.
package tests

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/core/service"
	"github.com/yndnr/mapzone-go/internal/telemetry/metric"
	"github.com/yndnr/mapzone-go/internal/telemetry/profiler"
	"github.com/yndnr/mapzone-go/internal/telemetry/tracer"
)

func TestPerThreadRun_FullTelemetry(t *testing.T) {
	const workers, perWorker = 4, 5

	spans := tracetest.NewSpanRecorder()
	tp, err := tracer.New("mapzone-perthread",
		tracer.WithSpanProcessor(spans),
		tracer.WithAttributes(map[string]string{"run.id": "01J0TESTRUN0000000000000000"}))
	if err != nil {
		t.Fatalf("tracer.New() error = %v", err)
	}
	defer tp.Shutdown(context.Background())

	reg := metric.NewRegistry()
	sink := profiler.NewTelemetry(tp, reg, nil)

	report, err := service.NewCoordinator(service.VariantPerThread,
		service.WithDelay(0),
		service.WithSink(sink),
		service.WithMetrics(reg),
		service.WithLimits(domain.Limits{MaxWorkers: 16}),
	).Run(context.Background(), workers, perWorker)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Spans
	counts := make(map[string]int)
	for _, s := range spans.Ended() {
		counts[s.Name()]++

		thread := ""
		for _, kv := range s.Attributes() {
			if kv.Key == "thread.name" {
				thread = kv.Value.AsString()
			}
		}
		if thread == "" {
			t.Errorf("span %q has no thread.name", s.Name())
		}

		found := false
		for _, kv := range s.Resource().Attributes() {
			if kv.Key == "run.id" {
				found = true
			}
		}
		if !found {
			t.Errorf("span %q has no run.id resource attribute", s.Name())
		}
	}
	wantSpans := map[string]int{
		profiler.ZoneBatch:    workers,
		profiler.ZoneInsert:   workers * perWorker,
		profiler.ZoneWorkload: workers * perWorker,
	}
	if diff := cmp.Diff(wantSpans, counts); diff != "" {
		t.Errorf("span counts mismatch (-want +got):\n%s", diff)
	}

	// Metrics
	for i := 0; i < workers; i++ {
		ch := domain.PerWorkerChannel(i)
		if got := testutil.ToFloat64(reg.PlotSamples.WithLabelValues(ch)); got != perWorker {
			t.Errorf("samples on %q = %v, want %d", ch, got, perWorker)
		}
	}
	if got := testutil.ToFloat64(reg.Messages); got != workers*perWorker {
		t.Errorf("messages = %v, want %d", got, workers*perWorker)
	}
	if got := testutil.ToFloat64(reg.Inserts); got != workers*perWorker {
		t.Errorf("inserts = %v, want %d", got, workers*perWorker)
	}

	// Map contents match a run with no instrumentation at all.
	plain, err := service.NewCoordinator(service.VariantPerThread, service.WithDelay(0)).
		Run(context.Background(), workers, perWorker)
	if err != nil {
		t.Fatalf("plain Run() error = %v", err)
	}
	if diff := cmp.Diff(plain.Map.Snapshot(), report.Map.Snapshot()); diff != "" {
		t.Errorf("instrumented map differs (-plain +instrumented):\n%s", diff)
	}
}
