package domain

import (
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestSlotIdentifier(t *testing.T) {
	id := SlotIdentifier{Base: 0x1000, Width: SlotWidth}

	if got := id.Identify(5, 50, 0); got != 0x1000 {
		t.Errorf("slot 0 = %#x, want 0x1000", got)
	}
	if got := id.Identify(5, 50, 3); got != 0x1018 {
		t.Errorf("slot 3 = %#x, want 0x1018", got)
	}

	// Zero width falls back to SlotWidth.
	if got := (SlotIdentifier{}).Identify(0, 0, 2); got != 2*SlotWidth {
		t.Errorf("zero width slot 2 = %d, want %d", got, 2*SlotWidth)
	}
}

func TestHashIdentifier(t *testing.T) {
	h := HashIdentifier{}

	a := h.Identify(1, 10, 0)
	b := h.Identify(1, 10, 99)
	c := h.Identify(2, 20, 0)

	if a != b {
		t.Error("hash should ignore the slot index")
	}
	if a == c {
		t.Error("different entries should hash differently")
	}
	if (HashIdentifier{Seed: 7}).Identify(1, 10, 0) == a {
		t.Error("seed should change the hash")
	}
}

func TestHashIdentifier_FitsInt64(t *testing.T) {
	h := HashIdentifier{}
	for key := 0; key < 1000; key++ {
		id := h.Identify(key, key*10, 0)
		if id > MaxIdentifier || int64(id) < 0 {
			t.Fatalf("key %d: id %#x does not fit a non-negative int64", key, id)
		}
		if id+SlotWidth < id {
			t.Fatalf("key %d: range end overflows", key)
		}
	}
}

func TestNewIdentifier(t *testing.T) {
	for _, mode := range []string{"", "slot", "SLOT"} {
		id, err := NewIdentifier(mode)
		if err != nil {
			t.Fatalf("NewIdentifier(%q) error = %v", mode, err)
		}
		if _, ok := id.(SlotIdentifier); !ok {
			t.Errorf("NewIdentifier(%q) = %T, want SlotIdentifier", mode, id)
		}
	}

	id, err := NewIdentifier("hash")
	if err != nil {
		t.Fatalf("NewIdentifier(hash) error = %v", err)
	}
	if _, ok := id.(HashIdentifier); !ok {
		t.Errorf("NewIdentifier(hash) = %T, want HashIdentifier", id)
	}

	if _, err := NewIdentifier("pointer"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewIdentifier(pointer) error = %v, want ErrInvalidConfig", err)
	}
}

func TestFormatting(t *testing.T) {
	if got := InsertLine(7, 0x1f); got != "Inserting key: 7, at address: 0x1f (31)" {
		t.Errorf("InsertLine() = %q", got)
	}
	if got := RangeMessage(0x10); got != "Memory Range: 0x10 - 0x18" {
		t.Errorf("RangeMessage() = %q", got)
	}
}

func TestRunID(t *testing.T) {
	id1, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID() error = %v", err)
	}
	id2, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID() error = %v", err)
	}

	if len(id1.String()) != 26 {
		t.Errorf("run id length = %d, want 26", len(id1.String()))
	}
	if id1 == id2 {
		t.Error("run ids should be unique")
	}
	if _, err := ulid.ParseStrict(id1.String()); err != nil {
		t.Errorf("run id %q is not a ULID: %v", id1, err)
	}
}
