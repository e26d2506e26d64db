package domain

import (
	"fmt"
	"math"
	"strconv"
)

// WorkRange is the half-open key interval [Start, Start+Count) owned by one worker.
type WorkRange struct {
	Index int
	Start int
	Count int
}

// End returns the first key past the range.
func (r WorkRange) End() int {
	return r.Start + r.Count
}

// Contains reports whether key belongs to the range.
func (r WorkRange) Contains(key int) bool {
	return key >= r.Start && key < r.End()
}

// WorkerName returns the diagnostic name of the worker owning the range.
func (r WorkRange) WorkerName() string {
	return WorkerName(r.Index)
}

// WorkerName returns the diagnostic name for worker index i.
func WorkerName(i int) string {
	return "Worker Thread " + strconv.Itoa(i)
}

// Partition splits [0, numWorkers*perWorker) into numWorkers equal ranges
// ordered by index. Callers validate the counts first.
func Partition(numWorkers, perWorker int) []WorkRange {
	if numWorkers <= 0 || perWorker <= 0 {
		return nil
	}
	ranges := make([]WorkRange, numWorkers)
	for i := range ranges {
		ranges[i] = WorkRange{
			Index: i,
			Start: i * perWorker,
			Count: perWorker,
		}
	}
	return ranges
}

// Limits bounds the accepted worker counts. Zero MaxWorkers means unbounded.
type Limits struct {
	MaxWorkers int
}

// ParseCounts parses and validates the numThreads and insertsPerThread
// positional arguments.
func ParseCounts(threadsArg, insertsArg string, limits Limits) (numThreads, perThread int, err error) {
	numThreads, err = strconv.Atoi(threadsArg)
	if err != nil {
		return 0, 0, ErrInvalidThreads.WithDetails(fmt.Sprintf("got %q", threadsArg)).WithCause(err)
	}
	perThread, err = strconv.Atoi(insertsArg)
	if err != nil {
		return 0, 0, ErrInvalidInserts.WithDetails(fmt.Sprintf("got %q", insertsArg)).WithCause(err)
	}
	if err := ValidateCounts(numThreads, perThread, limits); err != nil {
		return 0, 0, err
	}
	return numThreads, perThread, nil
}

// ValidateCounts checks that both counts are positive, that the worker
// count is within limits, and that the total key space fits in an int.
func ValidateCounts(numThreads, perThread int, limits Limits) error {
	if numThreads <= 0 {
		return ErrInvalidThreads.WithDetails(fmt.Sprintf("got %d", numThreads))
	}
	if perThread <= 0 {
		return ErrInvalidInserts.WithDetails(fmt.Sprintf("got %d", perThread))
	}
	if limits.MaxWorkers > 0 && numThreads > limits.MaxWorkers {
		return ErrTooManyThreads.WithDetails(fmt.Sprintf("got %d, limit %d", numThreads, limits.MaxWorkers))
	}
	if numThreads > math.MaxInt/perThread {
		return ErrInvalidInserts.WithDetails("total key space overflows int")
	}
	return nil
}
