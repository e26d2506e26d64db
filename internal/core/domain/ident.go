package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/spaolacci/murmur3"
)

// SlotWidth is the nominal size in bytes of one stored value.
const SlotWidth = 8

// MaxIdentifier bounds every identifier so it plots as a non-negative
// int64 and agrees with the unsigned value printed on stdout.
const MaxIdentifier uint64 = math.MaxInt64

// DefaultSlotBase is the identifier of slot 0.
const DefaultSlotBase uint64 = 0x7f3a_0000_0000

// Identifier modes.
const (
	IdentifierSlot = "slot"
	IdentifierHash = "hash"
)

// Identifier derives a synthetic identifier for an inserted entry.
// The value is only reported, never used for lookups.
type Identifier interface {
	Identify(key, value int, slot uint64) uint64
}

// SlotIdentifier maps slot indices onto an evenly spaced address-like range.
type SlotIdentifier struct {
	Base  uint64
	Width uint64
}

// Identify returns Base + slot*Width.
func (s SlotIdentifier) Identify(_, _ int, slot uint64) uint64 {
	w := s.Width
	if w == 0 {
		w = SlotWidth
	}
	return s.Base + slot*w
}

// HashIdentifier hashes the key and value with murmur3.
type HashIdentifier struct {
	Seed uint32
}

// Identify returns the murmur3 hash of key and value, truncated to
// MaxIdentifier.
func (h HashIdentifier) Identify(key, value int, _ uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(key))
	binary.LittleEndian.PutUint64(buf[8:], uint64(value))
	return murmur3.Sum64WithSeed(buf[:], h.Seed) & MaxIdentifier
}

// NewIdentifier returns the identifier for the named mode.
func NewIdentifier(mode string) (Identifier, error) {
	switch strings.ToLower(mode) {
	case "", IdentifierSlot:
		return SlotIdentifier{Base: DefaultSlotBase, Width: SlotWidth}, nil
	case IdentifierHash:
		return HashIdentifier{}, nil
	default:
		return nil, ErrInvalidConfig.WithDetails(fmt.Sprintf("unknown identifier mode %q", mode))
	}
}

// RangeMessage formats the text event describing the span of an identifier.
func RangeMessage(id uint64) string {
	return fmt.Sprintf("Memory Range: 0x%x - 0x%x", id, id+SlotWidth)
}

// InsertLine formats the stdout line written for each insert.
func InsertLine(key int, id uint64) string {
	return fmt.Sprintf("Inserting key: %d, at address: 0x%x (%d)", key, id, id)
}
