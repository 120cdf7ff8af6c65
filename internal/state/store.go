package state

import (
	"sync"
	"time"

	"github.com/five82/tubeclone/internal/probe"
)

// Snapshot is the passive health status shown by the UI.
type Snapshot struct {
	State               probe.State
	Last                probe.Outcome // most recent completed probe
	HasResult           bool
	LastHealthy         time.Time
	Probes              int
	ConsecutiveFailures int
}

// IsOffline returns true when the API has failed more than one probe in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Connected reports whether the most recent completed probe was healthy.
func (s Snapshot) Connected() bool {
	return s.HasResult && s.Last.Healthy()
}

// Store coordinates the monitor goroutine writing outcomes and the UI
// reading them.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

var _ probe.Recorder = (*Store)(nil)

// BeginProbe marks a probe as in flight. The previous outcome is kept.
func (s *Store) BeginProbe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.State = probe.Probing
}

// RecordProbe stores a completed outcome.
func (s *Store) RecordProbe(out probe.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Last = out
	s.snapshot.HasResult = true
	s.snapshot.State = out.State
	s.snapshot.Probes++
	if out.Healthy() {
		s.snapshot.ConsecutiveFailures = 0
		s.snapshot.LastHealthy = out.CheckedAt
		return
	}
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current status.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
