package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/telemetry/metric"
	"github.com/yndnr/mapzone-go/internal/telemetry/profiler"
	"github.com/yndnr/mapzone-go/pkg/cmap"
)

// Inserter writes keys into a shared map and reports every insert.
type Inserter struct {
	m        *cmap.Map[int, int]
	sink     profiler.Sink
	ident    domain.Identifier
	router   ChannelRouter
	out      io.Writer
	delay    time.Duration
	plotKeys bool
	metrics  *metric.Registry
}

// InserterConfig holds the collaborators of an Inserter.
type InserterConfig struct {
	Sink       profiler.Sink
	Identifier domain.Identifier
	Router     ChannelRouter
	Out        io.Writer
	Delay      time.Duration
	PlotKeys   bool
	Metrics    *metric.Registry
}

// NewInserter creates an Inserter over m. Nil collaborators get no-op defaults.
func NewInserter(m *cmap.Map[int, int], cfg InserterConfig) *Inserter {
	if cfg.Sink == nil {
		cfg.Sink = profiler.Noop{}
	}
	if cfg.Identifier == nil {
		cfg.Identifier = domain.SlotIdentifier{Base: domain.DefaultSlotBase, Width: domain.SlotWidth}
	}
	if cfg.Router == nil {
		cfg.Router = SharedChannel(domain.AddressChannel)
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	return &Inserter{
		m:        m,
		sink:     cfg.Sink,
		ident:    cfg.Identifier,
		router:   cfg.Router,
		out:      cfg.Out,
		delay:    cfg.Delay,
		plotKeys: cfg.PlotKeys,
		metrics:  cfg.Metrics,
	}
}

// Insert stores key -> value and reports the insert. The identifier is
// computed and every report is emitted while the map lock is held.
func (i *Inserter) Insert(ctx context.Context, worker, key, value int) uint64 {
	ctx, zone := i.sink.BeginZone(ctx, profiler.ZoneInsert)
	defer zone.End()

	var id uint64
	i.m.SetFunc(key, value, func(e cmap.Entry[int, int]) {
		id = i.ident.Identify(e.Key, e.Value, e.Slot)

		fmt.Fprintln(i.out, domain.InsertLine(e.Key, id))

		if i.plotKeys {
			i.sink.Plot(ctx, domain.KeyChannel, int64(e.Key))
		}
		if channel, ok := i.router.Route(worker); ok {
			i.sink.Plot(ctx, channel, int64(id))
		}
		i.sink.Message(ctx, domain.RangeMessage(id))
	})

	if i.metrics != nil {
		i.metrics.IncInserts()
	}
	return id
}

// SimulateWorkload pauses for d inside a "Simulate Workload" zone.
func SimulateWorkload(ctx context.Context, sink profiler.Sink, d time.Duration) {
	_, zone := sink.BeginZone(ctx, profiler.ZoneWorkload)
	defer zone.End()

	if d > 0 {
		time.Sleep(d)
	}
}

// ProcessBatch inserts every key of r with value key*10, pausing after each.
// It returns the number of inserts performed, which is always r.Count.
// A panic is recorded on the batch zone and then propagated.
func (i *Inserter) ProcessBatch(ctx context.Context, r domain.WorkRange) int {
	ctx, zone := i.sink.BeginZone(ctx, profiler.ZoneBatch)
	defer zone.End()
	defer func() {
		if p := recover(); p != nil {
			zone.RecordError(fmt.Errorf("%s: panic: %v", r.WorkerName(), p))
			panic(p)
		}
	}()

	n := 0
	for key := r.Start; key < r.End(); key++ {
		i.Insert(ctx, r.Index, key, key*10)
		SimulateWorkload(ctx, i.sink, i.delay)
		n++
	}
	return n
}
