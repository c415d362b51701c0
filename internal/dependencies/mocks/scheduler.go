package mocks

import (
	"sync"
	"time"

	"github.com/AeroX2/wordmarket/internal/model"
)

// MockScheduler records wake-ups instead of arming real timers. Tests
// drive time forward by invoking the room controller's alarm entry point
// directly.
type MockScheduler struct {
	mu      sync.Mutex
	pending map[model.RoomCode]time.Time
}

// NewMockScheduler creates a mock scheduler with no pending wake-ups
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{pending: make(map[model.RoomCode]time.Time)}
}

func (s *MockScheduler) Set(code model.RoomCode, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[code] = at
}

func (s *MockScheduler) Cancel(code model.RoomCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, code)
}

// PendingAt returns the pending wake-up time for a room, if any
func (s *MockScheduler) PendingAt(code model.RoomCode) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.pending[code]
	return at, ok
}

// HasPending reports whether any wake-up is armed for the room
func (s *MockScheduler) HasPending(code model.RoomCode) bool {
	_, ok := s.PendingAt(code)
	return ok
}
