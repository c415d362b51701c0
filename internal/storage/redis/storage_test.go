package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := model.NewRoom("ABC234")
	room.Players = append(room.Players, model.NewPlayer("p1", "Alice"))

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.Equal(model.PhaseLobby, retrieved.Phase)
	s.Require().Len(retrieved.Players, 1)
	s.Equal(model.StartingPoints, retrieved.Players[0].Score)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOPE22")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	room := model.NewRoom("ABC234")
	_ = s.storage.SaveRoom(s.ctx, room)

	err := s.storage.DeleteRoom(s.ctx, "ABC234")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "ABC234")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveRoom(s.ctx, model.NewRoom("ABC234"))

	exists, err = s.storage.RoomExists(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestRoomHasTTL() {
	_ = s.storage.SaveRoom(s.ctx, model.NewRoom("ABC234"))

	ttl := s.mini.TTL(roomKey("ABC234"))
	s.True(ttl > 0, "room snapshot should expire eventually")
}

func (s *StorageSuite) TestSaveRefreshesTTL() {
	room := model.NewRoom("ABC234")
	_ = s.storage.SaveRoom(s.ctx, room)

	s.mini.FastForward(30 * time.Minute)

	_ = s.storage.SaveRoom(s.ctx, room)
	ttl := s.mini.TTL(roomKey("ABC234"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRoomRoundTripPreservesRoundState() {
	endsAt := int64(1_750_000_000_000)

	room := model.NewRoom("ABC234")
	room.Phase = model.PhaseActive
	room.Status = model.StatusActive
	room.CurrentRound = 3
	room.EndsAt = &endsAt
	room.Board = model.Board{
		"C", "A", "T", "E", "E",
		"E", "E", "E", "E", "E",
		"E", "E", "E", "E", "E",
		"E", "E", "E", "E", "E",
		"E", "E", "E", "E", "E",
	}
	room.Players = append(room.Players, model.NewPlayer("p1", "Alice"))
	room.Players[0].ExtraLetter = "Q"
	room.PredictionBets["p1"] = &model.PredictionBet{
		BettorID:       "p1",
		TargetPlayerID: "p2",
		PredictedWords: 3,
		Stake:          5,
	}

	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(model.PhaseActive, retrieved.Phase)
	s.Equal(3, retrieved.CurrentRound)
	s.Len(retrieved.Board, 25)
	s.Equal("Q", retrieved.Players[0].ExtraLetter)
	s.Require().NotNil(retrieved.PredictionBets["p1"])
	s.Equal(5, retrieved.PredictionBets["p1"].Stake)
	s.Require().NotNil(retrieved.EndsAt)
	s.Equal(endsAt, *retrieved.EndsAt)
}

// Dictionary tests

func (s *StorageSuite) TestDictionaryNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, storage.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"CAT", "DOG", "BIRD"}

	err := s.storage.SaveDictionaryWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestDictionaryOrderPreserved() {
	// Stored as a list, not a set: load order drives viability sampling
	words := []string{"ZEBRA", "APPLE", "MANGO"}
	_ = s.storage.SaveDictionaryWords(s.ctx, words)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestSaveDictionaryReplacesPrevious() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"OLD", "LIST"})
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"NEW"})

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"NEW"}, retrieved)
}
