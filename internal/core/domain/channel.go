package domain

import "strconv"

// Plot channel names.
const (
	// AddressChannel is the plot shared by all workers.
	AddressChannel = "Memory Address"
	// KeyChannel receives the inserted key in the single-threaded program.
	KeyChannel = "Key"
)

// PerWorkerChannel returns the plot channel name for worker index i.
func PerWorkerChannel(i int) string {
	return AddressChannel + " - Thread " + strconv.Itoa(i)
}

// ChannelTable maps worker index to plot channel name.
type ChannelTable []string

// NewChannelTable builds a table with exactly n per-worker channels.
func NewChannelTable(n int) ChannelTable {
	if n <= 0 {
		return ChannelTable{}
	}
	t := make(ChannelTable, n)
	for i := range t {
		t[i] = PerWorkerChannel(i)
	}
	return t
}

// Lookup returns the channel for worker index i.
// ok is false if i is outside the table.
func (t ChannelTable) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(t) {
		return "", false
	}
	return t[i], true
}
