package cmap

import "sync"

// Entry describes a key/value pair at the moment it was written.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	// Slot is the index assigned when the key was first inserted.
	Slot uint64
	// Created is true if this write added the key.
	Created bool
}

type item[V any] struct {
	value V
	slot  uint64
}

// Map is a map guarded by a single exclusive lock.
type Map[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]item[V]
	nextSlot uint64
}

// New creates an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return NewWithCapacity[K, V](0)
}

// NewWithCapacity creates an empty map sized for n entries.
func NewWithCapacity[K comparable, V any](n int) *Map[K, V] {
	if n < 0 {
		n = 0
	}
	return &Map[K, V]{
		items: make(map[K]item[V], n),
	}
}

// Set stores a key-value pair.
func (m *Map[K, V]) Set(key K, value V) Entry[K, V] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(key, value)
}

// SetFunc stores a key-value pair and calls fn with the resulting entry
// before the lock is released. fn must not call back into m.
func (m *Map[K, V]) SetFunc(key K, value V, fn func(Entry[K, V])) Entry[K, V] {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.setLocked(key, value)
	if fn != nil {
		fn(e)
	}
	return e
}

func (m *Map[K, V]) setLocked(key K, value V) Entry[K, V] {
	it, exists := m.items[key]
	if !exists {
		it.slot = m.nextSlot
		m.nextSlot++
	}
	it.value = value
	m.items[key] = it

	return Entry[K, V]{
		Key:     key,
		Value:   value,
		Slot:    it.slot,
		Created: !exists,
	}
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	return it.value, ok
}

// Count returns the number of entries.
func (m *Map[K, V]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Slots returns the number of slots handed out so far.
func (m *Map[K, V]) Slots() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextSlot
}
