package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/mapzone-go/internal/telemetry/logger"
	"github.com/yndnr/mapzone-go/internal/telemetry/metric"
	"github.com/yndnr/mapzone-go/internal/telemetry/profiler"
	"github.com/yndnr/mapzone-go/internal/telemetry/tracer"
)

// WorkerCounts defines the worker counts for benchmarking.
var WorkerCounts = []int{1, 2, 4, 8, 16}

// InsertsPerWorker is the batch size used by run benchmarks.
const InsertsPerWorker = 256

// sinkCase builds a fresh sink for one benchmark.
type sinkCase struct {
	name string
	new  func(b *testing.B) profiler.Sink
}

// sinks returns the sinks compared by the benchmarks.
func sinks() []sinkCase {
	return []sinkCase{
		{"noop", func(*testing.B) profiler.Sink { return profiler.Noop{} }},
		{"metrics", func(*testing.B) profiler.Sink {
			return profiler.NewTelemetry(nil, metric.NewRegistry(), nil)
		}},
		{"traced", func(b *testing.B) profiler.Sink {
			tp, err := tracer.New("mapzone-bench")
			if err != nil {
				b.Fatalf("tracer.New failed: %v", err)
			}
			b.Cleanup(func() { tp.Shutdown(context.Background()) })
			return profiler.NewTelemetry(tp, metric.NewRegistry(), logger.Default())
		}},
	}
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithWorkerCounts runs a benchmark function with various worker counts.
func runWithWorkerCounts(b *testing.B, counts []int, benchFn func(b *testing.B, workers int)) {
	for _, n := range counts {
		b.Run(fmt.Sprintf("workers_%d", n), func(b *testing.B) {
			benchFn(b, n)
		})
	}
}
