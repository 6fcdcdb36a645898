package pipeline

import (
	"sync"
	"time"

	"jxlpress/internal/planner"
	"jxlpress/internal/probe"
)

// RunStats aggregates counters and byte totals across a run. All mutation
// goes through its methods, which take the single lock; direct field reads
// are safe only after every worker has joined.
type RunStats struct {
	mu sync.Mutex

	Total     int // Eligible items handed to the pool.
	Processed int // Items dequeued so far (drives progress).

	Success int
	Failed  int
	Skipped int // Skips during processing (exists, would-grow).

	SkippedExists int
	SkippedLarger int // Rollback guard: output would exceed input.

	// Collection-phase discards by reason.
	Discards map[planner.SkipReason]int

	// Eligible files by source format.
	Formats map[probe.Format]int

	HealthPassed int
	HealthFailed int

	TimestampDegraded int // Successes where timestamp preservation failed.

	BytesIn  int64
	BytesOut int64

	Start time.Time
}

// NewRunStats returns a RunStats ready for the collection phase.
func NewRunStats() *RunStats {
	return &RunStats{
		Discards: make(map[planner.SkipReason]int),
		Formats:  make(map[probe.Format]int),
		Start:    time.Now(),
	}
}

// AddDiscard records a collection-phase skip.
func (s *RunStats) AddDiscard(reason planner.SkipReason) {
	s.mu.Lock()
	s.Discards[reason]++
	s.mu.Unlock()
}

// AddEligible records an enqueued work item's format.
func (s *RunStats) AddEligible(format probe.Format) {
	s.mu.Lock()
	s.Formats[format]++
	s.mu.Unlock()
}

// MarkProcessed bumps the dequeue counter and returns the new value, for the
// progress reporter.
func (s *RunStats) MarkProcessed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed++
	return s.Processed
}

// MarkSuccess records a committed conversion and its byte totals. healthRan
// distinguishes real health passes from runs with the check disabled.
func (s *RunStats) MarkSuccess(bytesIn, bytesOut int64, healthRan, timestampOK bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Success++
	if healthRan {
		s.HealthPassed++
	}
	if !timestampOK {
		s.TimestampDegraded++
	}
	s.BytesIn += bytesIn
	s.BytesOut += bytesOut
}

// MarkFailed records a hard failure; healthFailed marks it as a health-check
// failure specifically.
func (s *RunStats) MarkFailed(healthFailed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	if healthFailed {
		s.HealthFailed++
	}
}

// MarkSkippedExists records an output-already-present skip.
func (s *RunStats) MarkSkippedExists() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
	s.SkippedExists++
}

// MarkSkippedLarger records a rollback-guard skip.
func (s *RunStats) MarkSkippedLarger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
	s.SkippedLarger++
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs. Positive means outputs are smaller.
func (s *RunStats) SpaceSaved() int64 {
	return s.BytesIn - s.BytesOut
}
