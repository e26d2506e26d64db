package service

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/mapzone-go/internal/core/domain"
	"github.com/yndnr/mapzone-go/internal/telemetry/profiler"
	"github.com/yndnr/mapzone-go/pkg/cmap"
)

func TestInserter_Insert(t *testing.T) {
	m := cmap.New[int, int]()
	rec := profiler.NewRecorder()
	var out bytes.Buffer

	ins := NewInserter(m, InserterConfig{Sink: rec, Out: &out})
	id := ins.Insert(context.Background(), 0, 3, 30)

	if want := domain.DefaultSlotBase; id != want {
		t.Errorf("Insert() id = 0x%x, want 0x%x", id, want)
	}
	if v, ok := m.Get(3); !ok || v != 30 {
		t.Errorf("Get(3) = (%d, %v), want (30, true)", v, ok)
	}

	wantLine := domain.InsertLine(3, id) + "\n"
	if out.String() != wantLine {
		t.Errorf("output = %q, want %q", out.String(), wantLine)
	}

	plots := rec.Filter(profiler.KindPlot)
	if len(plots) != 1 || plots[0].Channel != domain.AddressChannel || plots[0].Value != int64(id) {
		t.Errorf("plots = %+v, want one sample of %d on %q", plots, id, domain.AddressChannel)
	}

	msgs := rec.Filter(profiler.KindMessage)
	if len(msgs) != 1 || msgs[0].Text != domain.RangeMessage(id) {
		t.Errorf("messages = %+v, want %q", msgs, domain.RangeMessage(id))
	}

	zones := rec.Filter(profiler.KindZoneBegin)
	if len(zones) != 1 || zones[0].Name != profiler.ZoneInsert {
		t.Errorf("zones = %+v, want one %q", zones, profiler.ZoneInsert)
	}
}

func TestInserter_HashPlotMatchesLine(t *testing.T) {
	rec := profiler.NewRecorder()
	var out bytes.Buffer
	ins := NewInserter(cmap.New[int, int](), InserterConfig{
		Sink:       rec,
		Identifier: domain.HashIdentifier{},
		Out:        &out,
	})

	for key := 0; key < 200; key++ {
		ins.Insert(context.Background(), 0, key, key*10)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	plots := rec.Filter(profiler.KindPlot)
	if len(lines) != 200 || len(plots) != 200 {
		t.Fatalf("got %d lines and %d plots, want 200 each", len(lines), len(plots))
	}
	for i, p := range plots {
		if p.Value < 0 {
			t.Fatalf("plot %d is negative: %d", i, p.Value)
		}
		want := "(" + strconv.FormatInt(p.Value, 10) + ")"
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %q does not end with plotted value %s", lines[i], want)
		}
	}
}

type failingIdentifier struct{ at int }

func (f failingIdentifier) Identify(key, _ int, _ uint64) uint64 {
	if key == f.at {
		panic("identify failed")
	}
	return uint64(key)
}

func TestInserter_ProcessBatch_RecordsPanic(t *testing.T) {
	rec := profiler.NewRecorder()
	m := cmap.New[int, int]()
	ins := NewInserter(m, InserterConfig{Sink: rec, Identifier: failingIdentifier{at: 2}})

	func() {
		defer func() {
			if p := recover(); p != "identify failed" {
				t.Errorf("recovered %v, want the original panic", p)
			}
		}()
		ins.ProcessBatch(context.Background(), domain.WorkRange{Index: 1, Start: 0, Count: 4})
		t.Error("ProcessBatch returned normally")
	}()

	errs := rec.Filter(profiler.KindError)
	if len(errs) != 1 || errs[0].Name != profiler.ZoneBatch || !strings.Contains(errs[0].Text, "Worker Thread 1") {
		t.Fatalf("error events = %+v, want one on %q naming the worker", errs, profiler.ZoneBatch)
	}

	ends := rec.Filter(profiler.KindZoneEnd)
	if len(ends) == 0 || ends[len(ends)-1].Name != profiler.ZoneBatch {
		t.Errorf("batch zone not ended after panic: %+v", ends)
	}

	// The map lock must have been released.
	m.Set(9, 90)
	if v, ok := m.Get(9); !ok || v != 90 {
		t.Errorf("Get(9) = (%d, %v) after panic", v, ok)
	}
}

func TestInserter_DistinctIdentifiers(t *testing.T) {
	m := cmap.New[int, int]()
	ins := NewInserter(m, InserterConfig{})

	seen := make(map[uint64]int)
	for key := 0; key < 20; key++ {
		id := ins.Insert(context.Background(), 0, key, key*10)
		if prev, dup := seen[id]; dup {
			t.Fatalf("key %d got identifier 0x%x already used by key %d", key, id, prev)
		}
		seen[id] = key
	}
}

func TestInserter_PlotKeys(t *testing.T) {
	rec := profiler.NewRecorder()
	ins := NewInserter(cmap.New[int, int](), InserterConfig{Sink: rec, PlotKeys: true})

	ins.Insert(context.Background(), 0, 7, 70)

	plots := rec.Filter(profiler.KindPlot)
	if len(plots) != 2 {
		t.Fatalf("got %d plots, want 2", len(plots))
	}
	if plots[0].Channel != domain.KeyChannel || plots[0].Value != 7 {
		t.Errorf("first plot = %+v, want key 7 on %q", plots[0], domain.KeyChannel)
	}
	if plots[1].Channel != domain.AddressChannel {
		t.Errorf("second plot channel = %q, want %q", plots[1].Channel, domain.AddressChannel)
	}
}

func TestInserter_UnroutedWorker(t *testing.T) {
	rec := profiler.NewRecorder()
	router := PerWorkerChannels(domain.NewChannelTable(2))
	m := cmap.New[int, int]()
	ins := NewInserter(m, InserterConfig{Sink: rec, Router: router})

	ins.Insert(context.Background(), 5, 1, 10)

	if got := len(rec.Filter(profiler.KindPlot)); got != 0 {
		t.Errorf("got %d plots for unrouted worker, want 0", got)
	}
	if got := len(rec.Filter(profiler.KindMessage)); got != 1 {
		t.Errorf("got %d messages, want 1", got)
	}
	if _, ok := m.Get(1); !ok {
		t.Error("insert for unrouted worker was not stored")
	}
}

func TestInserter_ProcessBatch(t *testing.T) {
	m := cmap.New[int, int]()
	rec := profiler.NewRecorder()
	var out bytes.Buffer
	ins := NewInserter(m, InserterConfig{Sink: rec, Out: &out})

	n := ins.ProcessBatch(context.Background(), domain.WorkRange{Index: 1, Start: 3, Count: 3})
	if n != 3 {
		t.Errorf("ProcessBatch() = %d, want 3", n)
	}

	want := map[int]int{3: 30, 4: 40, 5: 50}
	if diff := cmp.Diff(want, m.Snapshot()); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	for i, key := range []int{3, 4, 5} {
		if !strings.HasPrefix(lines[i], "Inserting key: "+strconv.Itoa(key)+",") {
			t.Errorf("line %d = %q, want key %d", i, lines[i], key)
		}
	}

	counts := make(map[string]int)
	for _, e := range rec.Filter(profiler.KindZoneBegin) {
		counts[e.Name]++
	}
	wantZones := map[string]int{
		profiler.ZoneBatch:    1,
		profiler.ZoneInsert:   3,
		profiler.ZoneWorkload: 3,
	}
	if diff := cmp.Diff(wantZones, counts); diff != "" {
		t.Errorf("zone counts mismatch (-want +got):\n%s", diff)
	}
	if b, e := len(rec.Filter(profiler.KindZoneBegin)), len(rec.Filter(profiler.KindZoneEnd)); b != e {
		t.Errorf("zone begins = %d, ends = %d", b, e)
	}
}

func TestSimulateWorkload_ZeroDelay(t *testing.T) {
	rec := profiler.NewRecorder()
	SimulateWorkload(context.Background(), rec, 0)

	events := rec.Events()
	want := []profiler.Event{
		{Kind: profiler.KindZoneBegin, Name: profiler.ZoneWorkload},
		{Kind: profiler.KindZoneEnd, Name: profiler.ZoneWorkload},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestVariant(t *testing.T) {
	tests := []struct {
		variant  Variant
		plotKeys bool
		channels []string
	}{
		{VariantSingle, true, []string{domain.AddressChannel}},
		{VariantShared, false, []string{domain.AddressChannel}},
		{VariantPerThread, false, []string{
			"Memory Address - Thread 0",
			"Memory Address - Thread 1",
			"Memory Address - Thread 2",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			if got := tt.variant.PlotsKeys(); got != tt.plotKeys {
				t.Errorf("PlotsKeys() = %v, want %v", got, tt.plotKeys)
			}
			if got := tt.variant.Delay(); got <= 0 {
				t.Errorf("Delay() = %v, want positive", got)
			}
			if diff := cmp.Diff(tt.channels, tt.variant.Router(3).Channels()); diff != "" {
				t.Errorf("Channels() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if VariantSingle.Delay() != SingleDelay || VariantShared.Delay() != WorkerDelay {
		t.Error("variant delays do not match the pacing constants")
	}
}
