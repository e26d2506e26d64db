// Package domain defines the core value types for mapzone.
//
// Domain types are pure values without IO dependencies:
//
//   - WorkRange: the contiguous key interval assigned to one worker
//   - ChannelTable: plot channel names indexed by worker
//   - Identifier: synthetic per-insert identifiers (slot or hash based)
//   - RunID: ULID assigned to each run
//   - Errors: structured error codes for argument and config validation
package domain
