package alarm

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/AeroX2/wordmarket/internal/dependencies/mocks"
	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/testutil"
)

type SchedulerSuite struct {
	suite.Suite
	clock     *mocks.MockClock
	scheduler *TimerScheduler

	mu    sync.Mutex
	fired []model.RoomCode
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerSuite))
}

func (s *SchedulerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.scheduler = NewTimerScheduler(s.clock, testutil.NopLogger())
	s.fired = nil
	s.scheduler.Bind(func(code model.RoomCode) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fired = append(s.fired, code)
	})
}

func (s *SchedulerSuite) firedCodes() []model.RoomCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.RoomCode(nil), s.fired...)
}

func (s *SchedulerSuite) TestElapsedDeadlineFiresImmediately() {
	s.scheduler.Set("ABC234", s.clock.Now().Add(-time.Minute))

	s.Eventually(func() bool {
		return len(s.firedCodes()) == 1
	}, time.Second, 5*time.Millisecond)
	s.Equal(model.RoomCode("ABC234"), s.firedCodes()[0])
}

func (s *SchedulerSuite) TestFutureDeadlineDoesNotFireEarly() {
	s.scheduler.Set("ABC234", s.clock.Now().Add(time.Hour))

	time.Sleep(20 * time.Millisecond)
	s.Empty(s.firedCodes())
}

func (s *SchedulerSuite) TestCancelDropsPendingWakeUp() {
	s.scheduler.Set("ABC234", s.clock.Now().Add(10*time.Millisecond))
	s.scheduler.Cancel("ABC234")

	time.Sleep(50 * time.Millisecond)
	s.Empty(s.firedCodes())
}

func (s *SchedulerSuite) TestSetReplacesPendingWakeUp() {
	// The first wake-up would fire almost immediately; replacing it with a
	// distant one must stop the original timer.
	s.scheduler.Set("ABC234", s.clock.Now().Add(10*time.Millisecond))
	s.scheduler.Set("ABC234", s.clock.Now().Add(time.Hour))

	time.Sleep(50 * time.Millisecond)
	s.Empty(s.firedCodes())
}

func (s *SchedulerSuite) TestRoomsAreIndependent() {
	s.scheduler.Set("AAA222", s.clock.Now())
	s.scheduler.Set("BBB333", s.clock.Now().Add(time.Hour))

	s.Eventually(func() bool {
		return len(s.firedCodes()) == 1
	}, time.Second, 5*time.Millisecond)
	s.Equal(model.RoomCode("AAA222"), s.firedCodes()[0])
}
