package profiler

import (
	"context"
	"sync"
)

// EventKind identifies the type of a recorded event.
type EventKind string

const (
	KindZoneBegin  EventKind = "zone_begin"
	KindZoneEnd    EventKind = "zone_end"
	KindPlot       EventKind = "plot"
	KindMessage    EventKind = "message"
	KindThreadName EventKind = "thread_name"
	KindError      EventKind = "error"
)

// Event is one recorded sink call.
type Event struct {
	Kind    EventKind
	Thread  string
	Name    string // zone or thread name
	Channel string
	Value   int64
	Text    string
}

type threadKey struct{}

// ThreadName returns the worker name stored in ctx by SetThreadName.
func ThreadName(ctx context.Context) string {
	name, _ := ctx.Value(threadKey{}).(string)
	return name
}

func withThreadName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, threadKey{}, name)
}

// Recorder is a Sink that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Sink = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

type recordedZone struct {
	r      *Recorder
	name   string
	thread string
	once   sync.Once
}

func (z *recordedZone) End() {
	z.once.Do(func() {
		z.r.add(Event{Kind: KindZoneEnd, Thread: z.thread, Name: z.name})
	})
}

func (z *recordedZone) RecordError(err error) {
	if err != nil {
		z.r.add(Event{Kind: KindError, Thread: z.thread, Name: z.name, Text: err.Error()})
	}
}

// BeginZone implements Sink.
func (r *Recorder) BeginZone(ctx context.Context, name string) (context.Context, Zone) {
	thread := ThreadName(ctx)
	r.add(Event{Kind: KindZoneBegin, Thread: thread, Name: name})
	return ctx, &recordedZone{r: r, name: name, thread: thread}
}

// Plot implements Sink.
func (r *Recorder) Plot(ctx context.Context, channel string, value int64) {
	r.add(Event{Kind: KindPlot, Thread: ThreadName(ctx), Channel: channel, Value: value})
}

// Message implements Sink.
func (r *Recorder) Message(ctx context.Context, text string) {
	r.add(Event{Kind: KindMessage, Thread: ThreadName(ctx), Text: text})
}

// SetThreadName implements Sink.
func (r *Recorder) SetThreadName(ctx context.Context, name string) context.Context {
	r.add(Event{Kind: KindThreadName, Thread: name, Name: name})
	return withThreadName(ctx, name)
}

// Events returns a copy of all recorded events in call order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Filter returns the recorded events of one kind.
func (r *Recorder) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// PlotCounts returns the number of samples per plot channel.
func (r *Recorder) PlotCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Filter(KindPlot) {
		counts[e.Channel]++
	}
	return counts
}
