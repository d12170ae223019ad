package watch

import (
	"sync"
	"time"

	"github.com/wolfsburgpt/ticket-bot/internal/event"
)

// State is the watcher's only mutable state, shared between the scrape loop and
// the chat command handlers. Every access goes through the mutex since the two
// run on separate goroutines. Nothing here is persisted: a restart begins
// not-announced, with an empty digest and a zero check count.
type State struct {
	mu             sync.Mutex
	announced      bool
	previousDigest event.Digest
	checkCount     int64
	startTime      time.Time
}

// Status is a point-in-time view of the state for the status command.
type Status struct {
	Uptime    time.Duration
	Checks    int64
	Announced bool
}

// NewState creates a fresh state with the uptime clock starting now.
func NewState() *State {
	return &State{startTime: time.Now()}
}

// BeginCheck increments the lifetime check counter and returns its new value.
func (s *State) BeginCheck() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkCount++
	return s.checkCount
}

// Announced reports whether the availability alert has already been sent.
func (s *State) Announced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announced
}

// MarkAnnounced records that the alert went out. Further found-cycles stay
// silent until Reset.
func (s *State) MarkAnnounced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announced = true
}

// Reset clears the announced flag so the next found-cycle alerts again.
// Resetting while not announced is a no-op.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announced = false
}

// UpdateDigest compares a freshly built digest against the previous cycle's
// and, when they differ, swaps it in. Returns true when the digest changed and
// a digest message should go out. The very first comparison always differs
// because the previous digest starts empty.
func (s *State) UpdateDigest(d event.Digest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Equal(s.previousDigest) {
		return false
	}
	s.previousDigest = d
	return true
}

// Snapshot returns the current status for the status command.
func (s *State) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Uptime:    time.Since(s.startTime),
		Checks:    s.checkCount,
		Announced: s.announced,
	}
}
