package alarm

import (
	"log/slog"
	"sync"
	"time"

	"github.com/AeroX2/wordmarket/internal/dependencies/clock"
	"github.com/AeroX2/wordmarket/internal/model"
)

// Handler is invoked when a room's wake-up time arrives
type Handler func(code model.RoomCode)

// Scheduler arms at most one pending wake-up per room. Setting a new
// wake-up replaces any pending one for that room.
type Scheduler interface {
	Set(code model.RoomCode, at time.Time)
	Cancel(code model.RoomCode)
}

// TimerScheduler is the production scheduler backed by process-local
// timers. Timers do not survive a restart; recovery re-arms them from the
// persisted deadlines when a room is loaded.
type TimerScheduler struct {
	clock   clock.Clock
	logger  *slog.Logger
	handler Handler

	mu     sync.Mutex
	timers map[model.RoomCode]*time.Timer
}

// NewTimerScheduler creates a scheduler. Bind must be called before Set.
func NewTimerScheduler(clock clock.Clock, logger *slog.Logger) *TimerScheduler {
	return &TimerScheduler{
		clock:  clock,
		logger: logger,
		timers: make(map[model.RoomCode]*time.Timer),
	}
}

// Bind sets the handler fired when a wake-up arrives. It is separate from
// construction because the scheduler and the room controller reference
// each other.
func (s *TimerScheduler) Bind(handler Handler) {
	s.handler = handler
}

// Set arms a wake-up for the room, replacing any pending one. A time in
// the past fires immediately.
func (s *TimerScheduler) Set(code model.RoomCode, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[code]; ok {
		existing.Stop()
	}

	delay := at.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}

	s.logger.Debug("arming wake-up timer",
		"room", code,
		"delay", delay.String(),
	)

	s.timers[code] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, code)
		s.mu.Unlock()
		s.handler(code)
	})
}

// Cancel drops any pending wake-up for the room
func (s *TimerScheduler) Cancel(code model.RoomCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[code]; ok {
		existing.Stop()
		delete(s.timers, code)
	}
}

var _ Scheduler = (*TimerScheduler)(nil)
