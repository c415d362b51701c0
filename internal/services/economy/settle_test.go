package economy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/AeroX2/wordmarket/internal/model"
)

type SettleSuite struct {
	suite.Suite
}

func TestSettleSuite(t *testing.T) {
	suite.Run(t, new(SettleSuite))
}

func adjustmentFor(outcomes []PredictionOutcome, id model.PlayerID) (int, bool) {
	for _, o := range outcomes {
		if o.PlayerID == id {
			return o.Adjustment, true
		}
	}
	return 0, false
}

// SettlePredictionBets tests

func (s *SettleSuite) TestSingleWinnerTakesPoolAndBonus() {
	bets := []*model.PredictionBet{
		{BettorID: "p1", TargetPlayerID: "p3", PredictedWords: 5, Stake: 10},
		{BettorID: "p2", TargetPlayerID: "p3", PredictedWords: 2, Stake: 10},
		{BettorID: "p4", TargetPlayerID: "p3", PredictedWords: 3, Stake: 10},
	}
	actual := map[model.PlayerID]int{"p3": 2}

	outcomes := SettlePredictionBets(bets, actual)

	// p2 alone is eligible: stake back 10 + losing pool 20 + bonus 10
	p2, ok := adjustmentFor(outcomes, "p2")
	s.True(ok)
	s.Equal(40, p2)

	p1, ok := adjustmentFor(outcomes, "p1")
	s.True(ok)
	s.Equal(0, p1)

	p4, ok := adjustmentFor(outcomes, "p4")
	s.True(ok)
	s.Equal(0, p4)

	_, ok = adjustmentFor(outcomes, "p3")
	s.False(ok, "target without a bet settles nothing")
}

func (s *SettleSuite) TestClosestEligiblePredictionWins() {
	bets := []*model.PredictionBet{
		{BettorID: "p1", TargetPlayerID: "t", PredictedWords: 1, Stake: 5},
		{BettorID: "p2", TargetPlayerID: "t", PredictedWords: 4, Stake: 5},
	}
	actual := map[model.PlayerID]int{"t": 5}

	outcomes := SettlePredictionBets(bets, actual)

	// Both eligible; p2 is closer (distance 1 vs 4)
	p2, _ := adjustmentFor(outcomes, "p2")
	s.Equal(5+5+5, p2)
	p1, _ := adjustmentFor(outcomes, "p1")
	s.Equal(0, p1)
}

func (s *SettleSuite) TestTiedWinnersSplitPoolWithRemainder() {
	bets := []*model.PredictionBet{
		{BettorID: "p1", TargetPlayerID: "t", PredictedWords: 3, Stake: 4},
		{BettorID: "p2", TargetPlayerID: "t", PredictedWords: 3, Stake: 6},
		{BettorID: "p3", TargetPlayerID: "t", PredictedWords: 9, Stake: 7},
	}
	actual := map[model.PlayerID]int{"t": 3}

	outcomes := SettlePredictionBets(bets, actual)

	// Losing pool 7 splits 4/3 with the odd point to the first winner
	p1, _ := adjustmentFor(outcomes, "p1")
	s.Equal(4+4+4, p1)
	p2, _ := adjustmentFor(outcomes, "p2")
	s.Equal(6+3+6, p2)
	p3, _ := adjustmentFor(outcomes, "p3")
	s.Equal(0, p3)
}

func (s *SettleSuite) TestNoEligibleBetsForfeitAllStakes() {
	bets := []*model.PredictionBet{
		{BettorID: "p1", TargetPlayerID: "t", PredictedWords: 10, Stake: 5},
		{BettorID: "p2", TargetPlayerID: "t", PredictedWords: 8, Stake: 5},
	}
	actual := map[model.PlayerID]int{"t": 2}

	outcomes := SettlePredictionBets(bets, actual)

	p1, _ := adjustmentFor(outcomes, "p1")
	s.Equal(0, p1)
	p2, _ := adjustmentFor(outcomes, "p2")
	s.Equal(0, p2)
}

func (s *SettleSuite) TestTargetsSettleIndependently() {
	bets := []*model.PredictionBet{
		{BettorID: "p1", TargetPlayerID: "a", PredictedWords: 1, Stake: 3},
		{BettorID: "p1", TargetPlayerID: "b", PredictedWords: 9, Stake: 3},
	}
	actual := map[model.PlayerID]int{"a": 1, "b": 0}

	outcomes := SettlePredictionBets(bets, actual)

	// Wins on a (stake back + bonus, empty pool), loses on b
	p1, _ := adjustmentFor(outcomes, "p1")
	s.Equal(3+0+3, p1)
}

func (s *SettleSuite) TestNoBetsSettlesNothing() {
	outcomes := SettlePredictionBets(nil, map[model.PlayerID]int{"t": 4})
	s.Empty(outcomes)
}

// SettleLetterAuction tests

func (s *SettleSuite) TestSingleSelectorAwardedFree() {
	outcome := SettleLetterAuction(
		[]model.LetterID{"l1"},
		map[model.LetterID][]model.PlayerID{"l1": {"p1"}},
		nil,
	)

	s.Len(outcome.Awards, 1)
	s.Equal(model.PlayerID("p1"), outcome.Awards[0].PlayerID)
	s.Equal(0, outcome.Awards[0].Paid)
	s.Empty(outcome.Charges)
}

func (s *SettleSuite) TestTiedHighBidsBothAwardedAndCharged() {
	outcome := SettleLetterAuction(
		[]model.LetterID{"l1", "l2"},
		map[model.LetterID][]model.PlayerID{
			"l1": {"p1"},
			"l2": {"p2", "p3"},
		},
		[]*model.AuctionBid{
			{PlayerID: "p2", LetterID: "l2", Stake: 7},
			{PlayerID: "p4", LetterID: "l2", Stake: 7},
		},
	)

	s.Len(outcome.Awards, 3)
	s.Equal(model.PlayerID("p1"), outcome.Awards[0].PlayerID)
	s.Equal(0, outcome.Awards[0].Paid)

	s.Equal(model.PlayerID("p2"), outcome.Awards[1].PlayerID)
	s.Equal(7, outcome.Awards[1].Paid)
	s.Equal(model.PlayerID("p4"), outcome.Awards[2].PlayerID)
	s.Equal(7, outcome.Awards[2].Paid)

	s.Equal(7, outcome.Charges["p2"])
	s.Equal(7, outcome.Charges["p4"])
}

func (s *SettleSuite) TestLosingBidStillCharged() {
	outcome := SettleLetterAuction(
		[]model.LetterID{"l1"},
		map[model.LetterID][]model.PlayerID{"l1": {"p1", "p2"}},
		[]*model.AuctionBid{
			{PlayerID: "p1", LetterID: "l1", Stake: 9},
			{PlayerID: "p2", LetterID: "l1", Stake: 4},
		},
	)

	s.Len(outcome.Awards, 1)
	s.Equal(model.PlayerID("p1"), outcome.Awards[0].PlayerID)
	s.Equal(9, outcome.Charges["p1"])
	s.Equal(4, outcome.Charges["p2"])
}

func (s *SettleSuite) TestBidOnUncontestedLetterStillCharged() {
	outcome := SettleLetterAuction(
		[]model.LetterID{"l1"},
		map[model.LetterID][]model.PlayerID{"l1": {"p1"}},
		[]*model.AuctionBid{{PlayerID: "p2", LetterID: "l1", Stake: 5}},
	)

	// The letter resolves free to its lone selector, but the stray bid is
	// still forfeited
	s.Len(outcome.Awards, 1)
	s.Equal(model.PlayerID("p1"), outcome.Awards[0].PlayerID)
	s.Equal(0, outcome.Awards[0].Paid)
	s.Equal(5, outcome.Charges["p2"])
}

func (s *SettleSuite) TestBidsSummedPerPlayerAcrossLetters() {
	outcome := SettleLetterAuction(
		[]model.LetterID{"l1", "l2"},
		map[model.LetterID][]model.PlayerID{
			"l1": {"p1", "p2"},
			"l2": {"p1", "p3"},
		},
		[]*model.AuctionBid{
			{PlayerID: "p1", LetterID: "l1", Stake: 3},
			{PlayerID: "p1", LetterID: "l2", Stake: 2},
			{PlayerID: "p2", LetterID: "l1", Stake: 1},
		},
	)

	s.Equal(5, outcome.Charges["p1"])
	s.Equal(1, outcome.Charges["p2"])
}

func (s *SettleSuite) TestContestedWithNoBidsAwardsAllSelectors() {
	outcome := SettleLetterAuction(
		[]model.LetterID{"l1"},
		map[model.LetterID][]model.PlayerID{"l1": {"p1", "p2"}},
		nil,
	)

	s.Len(outcome.Awards, 2)
	s.Equal(model.PlayerID("p1"), outcome.Awards[0].PlayerID)
	s.Equal(model.PlayerID("p2"), outcome.Awards[1].PlayerID)
	s.Empty(outcome.Charges)
}

// splitInteger tests

func (s *SettleSuite) TestSplitIntegerRemainderToEarliest() {
	s.Equal([]int{4, 3}, splitInteger(7, 2))
	s.Equal([]int{3, 3, 2}, splitInteger(8, 3))
	s.Equal([]int{0, 0}, splitInteger(0, 2))
	s.Nil(splitInteger(5, 0))
}
