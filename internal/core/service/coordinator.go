package service

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/telemetry/logger"
	"github.com/yndnr/mapzone-go/internal/telemetry/metric"
	"github.com/yndnr/mapzone-go/internal/telemetry/profiler"
	"github.com/yndnr/mapzone-go/pkg/cmap"
)

// Coordinator validates a run, partitions the key space, launches one
// worker per range and waits for all of them.
type Coordinator struct {
	variant  Variant
	sink     profiler.Sink
	ident    domain.Identifier
	out      io.Writer
	metrics  *metric.Registry
	limits   domain.Limits
	delay    time.Duration
	delaySet bool
	runID    domain.RunID
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSink sets the instrumentation sink.
func WithSink(s profiler.Sink) Option {
	return func(c *Coordinator) {
		c.sink = s
	}
}

// WithIdentifier sets how insert identifiers are derived.
func WithIdentifier(id domain.Identifier) Option {
	return func(c *Coordinator) {
		c.ident = id
	}
}

// WithOutput sets the writer receiving one line per insert.
func WithOutput(w io.Writer) Option {
	return func(c *Coordinator) {
		c.out = w
	}
}

// WithMetrics sets the registry counting inserts and active workers.
func WithMetrics(r *metric.Registry) Option {
	return func(c *Coordinator) {
		c.metrics = r
	}
}

// WithLimits sets the worker count limits.
func WithLimits(l domain.Limits) Option {
	return func(c *Coordinator) {
		c.limits = l
	}
}

// WithDelay overrides the variant's workload delay.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		c.delay = d
		c.delaySet = true
	}
}

// WithRunID sets the run id reported in logs and in the Report.
func WithRunID(id domain.RunID) Option {
	return func(c *Coordinator) {
		c.runID = id
	}
}

// NewCoordinator creates a Coordinator for the given variant.
func NewCoordinator(variant Variant, opts ...Option) *Coordinator {
	c := &Coordinator{
		variant: variant,
		sink:    profiler.Noop{},
		out:     io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.delaySet {
		c.delay = variant.Delay()
	}
	return c
}

// WorkerReport summarizes one worker.
type WorkerReport struct {
	Name     string `json:"name" yaml:"name"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Inserted int    `json:"inserted" yaml:"inserted"`
	Channel  string `json:"channel" yaml:"channel"`
}

// Report describes a finished run.
type Report struct {
	RunID            string         `json:"run_id" yaml:"run_id"`
	Variant          string         `json:"variant" yaml:"variant"`
	Workers          int            `json:"workers" yaml:"workers"`
	InsertsPerWorker int            `json:"inserts_per_worker" yaml:"inserts_per_worker"`
	Expected         int            `json:"expected_entries" yaml:"expected_entries"`
	Entries          int            `json:"entries" yaml:"entries"`
	Channels         []string       `json:"channels" yaml:"channels"`
	Samples          map[string]int `json:"samples" yaml:"samples"`
	PerWorker        []WorkerReport `json:"per_worker,omitempty" yaml:"per_worker,omitempty"`
	Elapsed          time.Duration  `json:"elapsed" yaml:"elapsed"`

	// Map is the shared map after all workers joined.
	Map *cmap.Map[int, int] `json:"-" yaml:"-"`
}

// Complete reports whether the map holds exactly the expected entries:
// every key in [0, Expected) mapped to key*10.
func (r *Report) Complete() bool {
	if r.Entries != r.Expected {
		return false
	}
	if r.Map == nil {
		return true
	}
	keys := domain.WorkRange{Count: r.Expected}
	ok := true
	r.Map.Range(func(k, v int) bool {
		ok = keys.Contains(k) && v == k*10
		return ok
	})
	return ok
}

// Run validates the counts, then inserts numWorkers*perWorker keys using
// one goroutine per worker. Invalid counts return an error before any
// goroutine is started.
func (c *Coordinator) Run(ctx context.Context, numWorkers, perWorker int) (*Report, error) {
	if err := domain.ValidateCounts(numWorkers, perWorker, c.limits); err != nil {
		return nil, err
	}

	ranges := domain.Partition(numWorkers, perWorker)
	router := c.variant.Router(numWorkers)
	m := cmap.NewWithCapacity[int, int](numWorkers * perWorker)
	ins := c.newInserter(m, router)

	ctx = c.withRunID(ctx)
	log := logger.L(ctx)
	log.Info("run started",
		"variant", string(c.variant),
		"workers", numWorkers,
		"inserts_per_worker", perWorker)

	start := time.Now()
	results := make([]WorkerReport, len(ranges))

	var g errgroup.Group
	for _, r := range ranges {
		g.Go(func() error {
			name := r.WorkerName()
			wctx := c.sink.SetThreadName(ctx, name)
			wctx = logger.WithWorker(wctx, name)

			if c.metrics != nil {
				c.metrics.IncWorkersActive()
				defer c.metrics.DecWorkersActive()
			}

			logger.L(wctx).Debug("worker started", "start", r.Start, "end", r.End())
			inserted := ins.ProcessBatch(wctx, r)

			channel, _ := router.Route(r.Index)
			results[r.Index] = WorkerReport{
				Name:     name,
				Start:    r.Start,
				End:      r.End(),
				Inserted: inserted,
				Channel:  channel,
			}
			return nil
		})
	}
	// Workers never return errors; Wait is the join barrier.
	_ = g.Wait()

	report := c.report(m, router, numWorkers, perWorker, time.Since(start))
	report.PerWorker = results
	report.Samples = c.samples(router, results)
	c.logCompletion(log, report)
	return report, nil
}

// RunSequential inserts count keys on the calling goroutine.
func (c *Coordinator) RunSequential(ctx context.Context, count int) (*Report, error) {
	if err := domain.ValidateCounts(1, count, domain.Limits{}); err != nil {
		return nil, err
	}

	router := c.variant.Router(1)
	m := cmap.NewWithCapacity[int, int](count)
	ins := c.newInserter(m, router)

	ctx = c.withRunID(ctx)
	log := logger.L(ctx)
	log.Info("run started", "variant", string(c.variant), "iterations", count)

	start := time.Now()
	r := domain.WorkRange{Index: 0, Start: 0, Count: count}
	inserted := ins.ProcessBatch(ctx, r)

	report := c.report(m, router, 1, count, time.Since(start))
	report.Samples = c.samples(router, []WorkerReport{{Inserted: inserted}})
	c.logCompletion(log, report)
	return report, nil
}

func (c *Coordinator) newInserter(m *cmap.Map[int, int], router ChannelRouter) *Inserter {
	return NewInserter(m, InserterConfig{
		Sink:       c.sink,
		Identifier: c.ident,
		Router:     router,
		Out:        c.out,
		Delay:      c.delay,
		PlotKeys:   c.variant.PlotsKeys(),
		Metrics:    c.metrics,
	})
}

func (c *Coordinator) withRunID(ctx context.Context) context.Context {
	if c.runID == "" {
		return ctx
	}
	return logger.WithRunID(ctx, c.runID.String())
}

func (c *Coordinator) report(m *cmap.Map[int, int], router ChannelRouter, workers, perWorker int, elapsed time.Duration) *Report {
	channels := router.Channels()
	if c.variant.PlotsKeys() {
		channels = append([]string{domain.KeyChannel}, channels...)
	}
	return &Report{
		RunID:            c.runID.String(),
		Variant:          string(c.variant),
		Workers:          workers,
		InsertsPerWorker: perWorker,
		Expected:         workers * perWorker,
		Entries:          m.Count(),
		Channels:         channels,
		Elapsed:          elapsed,
		Map:              m,
	}
}

// samples counts plot samples per channel from the per-worker results.
func (c *Coordinator) samples(router ChannelRouter, workers []WorkerReport) map[string]int {
	out := make(map[string]int)
	for i, w := range workers {
		if ch, ok := router.Route(i); ok {
			out[ch] += w.Inserted
		}
		if c.variant.PlotsKeys() {
			out[domain.KeyChannel] += w.Inserted
		}
	}
	return out
}

func (c *Coordinator) logCompletion(log logger.Logger, r *Report) {
	if !r.Complete() {
		log.Error("run finished with missing entries",
			"entries", r.Entries,
			"expected", r.Expected)
		return
	}
	log.Info("run completed",
		"entries", r.Entries,
		"elapsed", r.Elapsed.String())
}
