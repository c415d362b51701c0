package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RoomSuite struct {
	suite.Suite
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomSuite))
}

func (s *RoomSuite) TestDeadlinePassed() {
	room := NewRoom("ABC234")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.False(room.DeadlinePassed(now), "no deadline set")

	endsAt := now.UnixMilli()
	room.EndsAt = &endsAt
	s.True(room.DeadlinePassed(now), "deadline is due at the exact instant")
	s.True(room.DeadlinePassed(now.Add(time.Second)))
	s.False(room.DeadlinePassed(now.Add(-time.Millisecond)))
}

func (s *RoomSuite) TestUpdateStatusFromPhase() {
	room := NewRoom("ABC234")

	room.Phase = PhaseActive
	room.UpdateStatusFromPhase()
	s.Equal(StatusActive, room.Status)

	room.Phase = PhaseRoundResults
	room.UpdateStatusFromPhase()
	s.Equal(StatusLobby, room.Status)

	room.Phase = PhaseFinished
	room.UpdateStatusFromPhase()
	s.Equal(StatusFinished, room.Status)
}
