// Package service implements the mapzone insert loop.
//
// This package contains:
//
//   - Inserter: insert-and-report under the map lock, workload pacing,
//     per-worker batch processing
//   - Coordinator: argument validation, key partitioning, fork-join of
//     workers, run reports
//   - Variant: the three program flavours and their plot routing
//
// All collaborators (sink, identifier, output) are injected. The
// Coordinator owns the shared map for the duration of a run.
package service
