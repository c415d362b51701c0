package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SnapshotSuite struct {
	suite.Suite
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotSuite))
}

func (s *SnapshotSuite) TestPlayersSortedByDescendingScore() {
	room := NewRoom("ABC234")
	room.Players = append(room.Players,
		NewPlayer("p1", "Alice"),
		NewPlayer("p2", "Bob"),
		NewPlayer("p3", "Carol"),
	)
	room.Players[1].Score = 20
	room.Players[2].Score = 15

	snap := room.Snapshot()
	s.Equal(PlayerID("p2"), snap.Players[0].ID)
	s.Equal(PlayerID("p3"), snap.Players[1].ID)
	s.Equal(PlayerID("p1"), snap.Players[2].ID)
}

func (s *SnapshotSuite) TestTiedScoresKeepJoinOrder() {
	room := NewRoom("ABC234")
	room.Players = append(room.Players,
		NewPlayer("p2", "Bob"),
		NewPlayer("p1", "Alice"),
	)

	snap := room.Snapshot()
	s.Equal(PlayerID("p2"), snap.Players[0].ID)
	s.Equal(PlayerID("p1"), snap.Players[1].ID)
}

func (s *SnapshotSuite) TestWordsSortedAlphabetically() {
	room := NewRoom("ABC234")
	player := NewPlayer("p1", "Alice")
	player.AddWord("ZEBRA", 2)
	player.AddWord("APPLE", 2)
	room.Players = append(room.Players, player)

	snap := room.Snapshot()
	s.Equal([]string{"APPLE", "ZEBRA"}, snap.Players[0].Words)
	// The room's own record keeps submission order
	s.Equal([]string{"ZEBRA", "APPLE"}, player.Words)
}

func (s *SnapshotSuite) TestMapCollectionsSortedByPlayerID() {
	room := NewRoom("ABC234")
	room.AuctionBids["p3"] = &AuctionBid{PlayerID: "p3", LetterID: "1-0-x", Stake: 2}
	room.AuctionBids["p1"] = &AuctionBid{PlayerID: "p1", LetterID: "1-0-x", Stake: 4}
	room.PredictionSkips["p9"] = true
	room.PredictionSkips["p2"] = true
	room.RoundReadyIDs["pb"] = true
	room.RoundReadyIDs["pa"] = true

	snap := room.Snapshot()
	s.Equal(PlayerID("p1"), snap.AuctionBids[0].PlayerID)
	s.Equal(PlayerID("p3"), snap.AuctionBids[1].PlayerID)
	s.Equal([]PlayerID{"p2", "p9"}, snap.PredictionSkips)
	s.Equal([]PlayerID{"pa", "pb"}, snap.RoundReadyPlayerIDs)
}

func (s *SnapshotSuite) TestInternalFieldsNotExposed() {
	room := NewRoom("ABC234")
	room.MarketLetterPool = []string{"Q", "X"}
	room.DraftSelections["p1"] = "1-0-x"

	// Draft selections and the letter pool are persistence-only; the wire
	// shape must not carry them
	data, err := json.Marshal(room.Snapshot())
	s.Require().NoError(err)
	s.NotContains(string(data), "draftSelections")
	s.NotContains(string(data), "marketLetterPool")

	// The persisted record does carry both
	data, err = json.Marshal(room)
	s.Require().NoError(err)
	s.Contains(string(data), "draftSelections")
	s.Contains(string(data), "marketLetterPool")
}

func (s *SnapshotSuite) TestExtraLetterNilUntilGranted() {
	room := NewRoom("ABC234")
	room.Players = append(room.Players, NewPlayer("p1", "Alice"))

	snap := room.Snapshot()
	s.Nil(snap.Players[0].ExtraLetter)

	room.Players[0].ExtraLetter = "K"
	snap = room.Snapshot()
	s.Require().NotNil(snap.Players[0].ExtraLetter)
	s.Equal("K", *snap.Players[0].ExtraLetter)
}

func (s *SnapshotSuite) TestSnapshotDetachedFromRoom() {
	room := NewRoom("ABC234")
	room.Board = Board{"A", "B", "C", "D"}

	snap := room.Snapshot()
	room.Board[0] = "Z"

	s.Equal("A", snap.Board[0])
}
