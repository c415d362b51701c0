package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/room"
	"github.com/AeroX2/wordmarket/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.app.LoadTestDictionary()
}

// Test: complete single-round game from room creation to finished, covering
// the draft, auction, prediction, active, and results phases end to end.
//
// The mock random makes everything deterministic: shuffles are no-ops, so a
// two-player room drafts the offers A and B, and generated boards are a
// uniform grid of E (the most frequent letter in the bag).
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Step 1: Alice creates a room, Bob joins
	aliceID, state, err := s.app.RoomController.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)
	code := state.RoomID
	s.Equal(model.PhaseLobby, state.Phase)

	bobID, state, err := s.app.RoomController.JoinRoom(s.ctx, code, "Bob")
	s.Require().NoError(err)
	s.Len(state.Players, 2)

	// Step 2: configure a single round and start
	_, err = s.app.RoomController.ConfigureRounds(s.ctx, code, 1)
	s.Require().NoError(err)

	state, err = s.app.RoomController.Advance(s.ctx, code, aliceID, nil)
	s.Require().NoError(err)
	s.Equal(model.PhaseLetterDraft, state.Phase)
	s.Require().Len(state.DraftLetters, 2)
	s.Equal("A", state.DraftLetters[0].Letter)
	s.Equal("B", state.DraftLetters[1].Letter)

	// Step 3: both players want the same letter, forcing an auction
	contested := state.DraftLetters[0].ID
	_, err = s.app.RoomController.SubmitDraftPick(s.ctx, code, aliceID, contested)
	s.Require().NoError(err)
	state, err = s.app.RoomController.SubmitDraftPick(s.ctx, code, bobID, contested)
	s.Require().NoError(err)
	s.Equal(model.PhaseLetterAuction, state.Phase)
	s.Require().NotNil(state.CurrentAuctionLetterID)
	s.Equal(contested, *state.CurrentAuctionLetterID)

	// Step 4: Alice outbids Bob; both stakes are charged
	_, err = s.app.RoomController.SubmitAuctionBid(s.ctx, code, aliceID, 5)
	s.Require().NoError(err)
	state, err = s.app.RoomController.SubmitAuctionBid(s.ctx, code, bobID, 3)
	s.Require().NoError(err)

	alice := s.findPlayer(state, aliceID)
	bob := s.findPlayer(state, bobID)
	s.Require().NotNil(alice.ExtraLetter)
	s.Equal("A", *alice.ExtraLetter)
	s.Equal(5, alice.Score)
	s.Equal(7, bob.Score)

	// Bob re-drafts alone from the remaining pool
	s.Equal(model.PhaseLetterDraft, state.Phase)
	s.Require().Len(state.DraftLetters, 1)
	s.Equal("B", state.DraftLetters[0].Letter)

	state, err = s.app.RoomController.SubmitDraftPick(s.ctx, code, bobID, state.DraftLetters[0].ID)
	s.Require().NoError(err)
	s.Equal(model.PhasePrediction, state.Phase)

	// Step 5: Alice bets Bob finds exactly one word; Bob skips. The round
	// starts as soon as everyone has resolved.
	_, err = s.app.RoomController.PlacePredictionBet(s.ctx, code, room.PredictionBetInput{
		BettorID:       aliceID,
		TargetPlayerID: bobID,
		PredictedWords: 1,
		Stake:          2,
	})
	s.Require().NoError(err)
	state, err = s.app.RoomController.PlacePredictionBet(s.ctx, code, room.PredictionBetInput{
		BettorID: bobID,
		Skip:     true,
	})
	s.Require().NoError(err)
	s.Equal(model.PhaseActive, state.Phase)
	s.Len(state.Board, model.BoardSize*model.BoardSize)
	s.Require().NotNil(state.EndsAt)

	// Step 6: both players find words on the uniform board
	result, err := s.app.RoomController.SubmitWord(s.ctx, code, aliceID, "EEE")
	s.Require().NoError(err)
	s.True(result.OK)
	s.Equal(1, result.ScoreDelta)

	result, err = s.app.RoomController.SubmitWord(s.ctx, code, bobID, "EEEE")
	s.Require().NoError(err)
	s.True(result.OK)

	// Step 7: the round timer fires
	s.app.MockClock.Advance(model.RoundDuration + time.Second)
	s.app.RoomController.HandleAlarm(code)

	state, err = s.app.RoomController.GetSnapshot(s.ctx, code)
	s.Require().NoError(err)
	s.Equal(model.PhaseRoundResults, state.Phase)

	// Alice's prediction was exact with no losing pool, so she gets her
	// stake back plus a matching bonus: 10 - 5 (bid) - 2 (stake) + 1 (word)
	// + 4 (payout) = 8. Bob: 10 - 3 (bid) + 1 (word) = 8.
	alice = s.findPlayer(state, aliceID)
	bob = s.findPlayer(state, bobID)
	s.Equal(8, alice.Score)
	s.Equal(8, bob.Score)
	s.Equal(4, alice.RoundPredictionPoints)
	s.Equal(1, bob.RoundWordCount)

	// Step 8: both ready up; the only round was the last, so the game ends
	_, err = s.app.RoomController.Advance(s.ctx, code, aliceID, nil)
	s.Require().NoError(err)
	state, err = s.app.RoomController.Advance(s.ctx, code, bobID, nil)
	s.Require().NoError(err)
	s.Equal(model.PhaseFinished, state.Phase)
	s.Equal(model.StatusFinished, state.Status)
}

// Test: a room restored from storage picks up where it left off
func (s *IntegrationSuite) TestRoomSurvivesControllerRestart() {
	aliceID, state, err := s.app.RoomController.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)
	code := state.RoomID

	_, _, err = s.app.RoomController.JoinRoom(s.ctx, code, "Bob")
	s.Require().NoError(err)

	_, err = s.app.RoomController.Advance(s.ctx, code, aliceID, nil)
	s.Require().NoError(err)

	// A second app sharing the same storage stands in for a restart
	restarted := newWithDependencies(s.app.Storage, s.app.MockClock, s.app.MockRandom, testutil.NopLogger())
	restarted.DictionaryService.LoadWords(s.app.DictionaryService.Words())

	state, err = restarted.RoomController.GetSnapshot(s.ctx, code)
	s.Require().NoError(err)
	s.Equal(model.PhaseLetterDraft, state.Phase)
	s.Len(state.Players, 2)
	s.Len(state.DraftLetters, 2)
}

func (s *IntegrationSuite) findPlayer(state model.RoomSnapshot, id model.PlayerID) model.PlayerSnapshot {
	for _, p := range state.Players {
		if p.ID == id {
			return p
		}
	}
	s.FailNow("player not in snapshot", string(id))
	return model.PlayerSnapshot{}
}
