package service

import (
	"time"

	"github.com/yndnr/mapzone-go/internal/core/domain"
)

// Workload delays. These are fixed pacing constants, not tuning knobs.
const (
	WorkerDelay      = 50 * time.Millisecond
	SingleDelay      = 100 * time.Millisecond
	SingleIterations = 100
)

// Variant selects which demonstration program is running.
type Variant string

const (
	// VariantSingle inserts sequentially on the calling goroutine.
	VariantSingle Variant = "single"
	// VariantShared runs workers that all plot to one channel.
	VariantShared Variant = "shared"
	// VariantPerThread runs workers that each plot to their own channel.
	VariantPerThread Variant = "perthread"
)

// Delay returns the workload pause used after each insert.
func (v Variant) Delay() time.Duration {
	if v == VariantSingle {
		return SingleDelay
	}
	return WorkerDelay
}

// Router returns the plot routing for numWorkers workers.
func (v Variant) Router(numWorkers int) ChannelRouter {
	if v == VariantPerThread {
		return PerWorkerChannels(domain.NewChannelTable(numWorkers))
	}
	return SharedChannel(domain.AddressChannel)
}

// PlotsKeys reports whether the variant also plots each inserted key.
func (v Variant) PlotsKeys() bool {
	return v == VariantSingle
}

// ChannelRouter picks the plot channel for a worker index.
type ChannelRouter interface {
	Route(worker int) (channel string, ok bool)
	Channels() []string
}

// SharedChannel routes every worker to one channel.
type SharedChannel string

// Route implements ChannelRouter.
func (c SharedChannel) Route(int) (string, bool) {
	return string(c), true
}

// Channels implements ChannelRouter.
func (c SharedChannel) Channels() []string {
	return []string{string(c)}
}

// PerWorkerChannels routes each worker to its own channel. Workers outside
// the table are not plotted.
type PerWorkerChannels domain.ChannelTable

// Route implements ChannelRouter.
func (c PerWorkerChannels) Route(worker int) (string, bool) {
	return domain.ChannelTable(c).Lookup(worker)
}

// Channels implements ChannelRouter.
func (c PerWorkerChannels) Channels() []string {
	return append([]string(nil), c...)
}
