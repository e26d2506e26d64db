// Package cmap provides the shared map used by the mapzone inserters.
//
// A Map guards a plain Go map with one exclusive lock. Every write goes
// through that lock, so concurrent workers are fully serialized:
//
//   - Set: insert or overwrite a key
//   - SetFunc: insert or overwrite, then run a callback while still holding the lock
//   - Get, Count, Range, Snapshot: reads under the same lock
//
// Usage:
//
//	m := cmap.New[int, int]()
//	m.SetFunc(7, 70, func(e cmap.Entry[int, int]) {
//		fmt.Println(e.Key, e.Slot)
//	})
//
// Each key is assigned a slot index the first time it is inserted. The
// index comes from a monotonic counter and survives overwrites, which
// gives callers a stable per-entry identifier without exposing memory
// addresses.
package cmap
