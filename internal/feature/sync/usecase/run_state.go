package usecase

import (
	"sync"
	"time"

	"finnews_backend/internal/feature/sync/domain/entity"
)

// RunState is the process-wide record of the current or most recent sync run.
// It enforces the at-most-one-run invariant: TryStart is the only way to
// claim the slot and its check-and-set happens under the mutex, so two
// concurrent triggers can never both observe an idle slot. All counter
// mutation goes through its methods; readers take snapshots and never block
// the engine beyond the short critical sections.
type RunState struct {
	mu              sync.Mutex
	running         bool
	startedAt       *time.Time
	completedAt     *time.Time
	currentExchange *string
	processed       int
	success         int
	errors          int
	lastError       *string
}

// NewRunState returns an idle run state.
func NewRunState() *RunState {
	return &RunState{}
}

// TryStart atomically claims the run slot. It returns false without mutating
// anything when a run is already active; on success the counters and error
// message of the previous run are cleared and the start time is stamped.
func (s *RunState) TryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	now := time.Now()
	s.running = true
	s.startedAt = &now
	s.completedAt = nil
	s.currentExchange = nil
	s.processed = 0
	s.success = 0
	s.errors = 0
	s.lastError = nil
	return true
}

// SetCurrentExchange records the exchange currently being processed.
func (s *RunState) SetCurrentExchange(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentExchange = &code
}

// RecordResult counts one processed symbol. A failed symbol increments the
// error counter and its message becomes the run's most recent error.
func (s *RunState) RecordResult(ok bool, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed++
	if ok {
		s.success++
		return
	}
	s.errors++
	if errMsg != "" {
		s.lastError = &errMsg
	}
}

// RecordExchangeFailure counts a whole-exchange fetch failure as a single
// error without touching the processed counter.
func (s *RunState) RecordExchangeFailure(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors++
	s.lastError = &errMsg
}

// Complete releases the run slot and stamps the completion time. Final
// counters stay in place so the last run remains queryable.
func (s *RunState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.running = false
	s.completedAt = &now
	s.currentExchange = nil
}

// Fail releases the run slot after an engine-level failure, recording the
// message for polling clients.
func (s *RunState) Fail(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.running = false
	s.completedAt = &now
	s.currentExchange = nil
	s.lastError = &errMsg
}

// Snapshot returns a copy of the current state. The copy owns its pointer
// fields, so later mutation by the engine never leaks into a reader.
func (s *RunState) Snapshot() entity.RunSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := entity.RunSnapshot{
		IsRunning:      s.running,
		TotalProcessed: s.processed,
		TotalSuccess:   s.success,
		TotalErrors:    s.errors,
	}
	if s.startedAt != nil {
		t := *s.startedAt
		snap.StartedAt = &t
	}
	if s.completedAt != nil {
		t := *s.completedAt
		snap.CompletedAt = &t
	}
	if s.currentExchange != nil {
		c := *s.currentExchange
		snap.CurrentExchange = &c
	}
	if s.lastError != nil {
		e := *s.lastError
		snap.ErrorMessage = &e
	}
	return snap
}
