package economy

import (
	"github.com/AeroX2/wordmarket/internal/model"
)

// PredictionOutcome is the net point adjustment for one player after the
// prediction market settles.
type PredictionOutcome struct {
	PlayerID   model.PlayerID
	Adjustment int
}

// AuctionAward records a letter granted by auction settlement and what the
// winner paid for it.
type AuctionAward struct {
	PlayerID model.PlayerID
	LetterID model.LetterID
	Paid     int
}

// AuctionOutcome is the full result of settling a letter auction: which
// players receive letters and what every bidder is charged. All bids are
// charged whether or not they win.
type AuctionOutcome struct {
	Awards  []AuctionAward
	Charges map[model.PlayerID]int
}

// SettlePredictionBets computes per-player point adjustments for a set of
// prediction bets given the actual word counts. Bets on each target settle
// independently: a bet is eligible when the target met or beat the
// prediction, the closest eligible predictions win, winners recover their
// stake plus an even split of the losing stakes on that target plus a
// bonus equal to their own stake, and losers forfeit their stake.
//
// Stakes were escrowed when the bets were placed, so the returned
// adjustments are deltas against already-debited balances.
func SettlePredictionBets(bets []*model.PredictionBet, actualWords map[model.PlayerID]int) []PredictionOutcome {
	byTarget := make(map[model.PlayerID][]*model.PredictionBet)
	var targetOrder []model.PlayerID
	for _, bet := range bets {
		if _, seen := byTarget[bet.TargetPlayerID]; !seen {
			targetOrder = append(targetOrder, bet.TargetPlayerID)
		}
		byTarget[bet.TargetPlayerID] = append(byTarget[bet.TargetPlayerID], bet)
	}

	adjustments := make(map[model.PlayerID]int)
	var playerOrder []model.PlayerID
	credit := func(id model.PlayerID, delta int) {
		if _, seen := adjustments[id]; !seen {
			playerOrder = append(playerOrder, id)
		}
		adjustments[id] += delta
	}

	for _, target := range targetOrder {
		targetBets := byTarget[target]
		actual := actualWords[target]

		var eligible []*model.PredictionBet
		bestDistance := -1
		for _, bet := range targetBets {
			if actual < bet.PredictedWords {
				continue
			}
			eligible = append(eligible, bet)
			distance := actual - bet.PredictedWords
			if bestDistance == -1 || distance < bestDistance {
				bestDistance = distance
			}
		}

		var winners []*model.PredictionBet
		for _, bet := range eligible {
			if actual-bet.PredictedWords == bestDistance {
				winners = append(winners, bet)
			}
		}

		winning := make(map[model.PlayerID]bool, len(winners))
		for _, bet := range winners {
			winning[bet.BettorID] = true
		}

		losingPool := 0
		for _, bet := range targetBets {
			if !winning[bet.BettorID] {
				losingPool += bet.Stake
			}
		}

		shares := splitInteger(losingPool, len(winners))
		for i, bet := range winners {
			// Stake back, share of the losing pool, and a bonus
			// matching the stake.
			credit(bet.BettorID, bet.Stake+shares[i]+bet.Stake)
		}
		for _, bet := range targetBets {
			if !winning[bet.BettorID] {
				credit(bet.BettorID, 0)
			}
		}
	}

	outcomes := make([]PredictionOutcome, 0, len(playerOrder))
	for _, id := range playerOrder {
		outcomes = append(outcomes, PredictionOutcome{PlayerID: id, Adjustment: adjustments[id]})
	}
	return outcomes
}

// SettleLetterAuction resolves contested draft letters. A letter with a
// single selector goes to them for free. A contested letter with no bids
// at all is awarded to every selector. Otherwise every highest-stake
// bidder receives the letter. Every submitted bid is charged regardless
// of outcome, summed per player, even when the letter it targets resolves
// without an auction.
func SettleLetterAuction(
	contested []model.LetterID,
	selectors map[model.LetterID][]model.PlayerID,
	bids []*model.AuctionBid,
) AuctionOutcome {
	outcome := AuctionOutcome{Charges: make(map[model.PlayerID]int)}

	bidsByLetter := make(map[model.LetterID][]*model.AuctionBid)
	for _, bid := range bids {
		bidsByLetter[bid.LetterID] = append(bidsByLetter[bid.LetterID], bid)
		outcome.Charges[bid.PlayerID] += bid.Stake
	}

	for _, letterID := range contested {
		letterSelectors := selectors[letterID]
		letterBids := bidsByLetter[letterID]

		if len(letterSelectors) == 1 {
			outcome.Awards = append(outcome.Awards, AuctionAward{
				PlayerID: letterSelectors[0],
				LetterID: letterID,
			})
			continue
		}

		if len(letterBids) == 0 {
			for _, playerID := range letterSelectors {
				outcome.Awards = append(outcome.Awards, AuctionAward{
					PlayerID: playerID,
					LetterID: letterID,
				})
			}
			continue
		}

		highest := 0
		for _, bid := range letterBids {
			if bid.Stake > highest {
				highest = bid.Stake
			}
		}

		for _, bid := range letterBids {
			if bid.Stake == highest {
				outcome.Awards = append(outcome.Awards, AuctionAward{
					PlayerID: bid.PlayerID,
					LetterID: letterID,
					Paid:     bid.Stake,
				})
			}
		}
	}

	return outcome
}

// splitInteger divides total into count whole-number shares, giving the
// remainder one point at a time to the earliest shares.
func splitInteger(total, count int) []int {
	if count <= 0 {
		return nil
	}
	base := total / count
	remainder := total % count
	shares := make([]int, count)
	for i := range shares {
		shares[i] = base
		if i < remainder {
			shares[i]++
		}
	}
	return shares
}
