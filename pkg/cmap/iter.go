package cmap

// Range calls fn for every entry while holding the lock.
// The callback returns false to stop iteration and must not call back into m.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, it := range m.items {
		if !fn(k, it.value) {
			return
		}
	}
}

// Snapshot returns a copy of the contents as a plain map.
func (m *Map[K, V]) Snapshot() map[K]V {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[K]V, len(m.items))
	for k, it := range m.items {
		out[k] = it.value
	}
	return out
}
