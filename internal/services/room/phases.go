package room

import (
	"fmt"
	"log/slog"

	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/economy"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// The helpers in this file mutate room state only. Persisting and
// broadcasting is the caller's job, once per action, after all transitions
// settle.

// prepareRound resets every per-round collection and player counter, then
// builds a fresh market letter pool and the first batch of draft offers.
func (c *Controller) prepareRound(room *model.Room) {
	room.Board = model.Board{}
	room.StartedAt = nil
	room.EndsAt = nil
	room.PredictionBets = make(map[model.PlayerID]*model.PredictionBet)
	room.PredictionSkips = make(map[model.PlayerID]bool)
	room.DraftSelections = make(map[model.PlayerID]model.LetterID)
	room.AuctionBids = make(map[model.PlayerID]*model.AuctionBid)
	room.RoundReadyIDs = make(map[model.PlayerID]bool)
	room.ContestedLetterIDs = []model.LetterID{}
	room.CurrentAuctionLetterID = ""

	for _, player := range room.Players {
		player.ResetRound()
	}

	room.MarketLetterPool = c.generateUniqueLetters(len(room.Players), nil)
	room.DraftLetters = c.generateDraftLetters(room, len(room.PlayersWithoutExtraLetter()))
}

// generateDraftLetters draws up to count unique offers from the market
// letter pool. Offer ids are scoped to the round and batch so stale picks
// can never match a later batch.
func (c *Controller) generateDraftLetters(room *model.Room, count int) []model.DraftLetter {
	if count <= 0 {
		return []model.DraftLetter{}
	}

	available := make([]string, len(room.MarketLetterPool))
	copy(available, room.MarketLetterPool)
	c.random.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if count > len(available) {
		count = len(available)
	}
	letters := make([]model.DraftLetter, 0, count)
	for i := 0; i < count; i++ {
		letters = append(letters, model.DraftLetter{
			ID:     model.LetterID(fmt.Sprintf("%d-%d-%s", room.CurrentRound, i, c.random.String(letterIDRandLength, letterIDAlphabet))),
			Letter: available[i],
		})
	}
	return letters
}

// generateUniqueLetters returns count letters drawn without repetition from
// the alphabet minus disallowed; once the alphabet is exhausted the
// remainder is padded with repeats.
func (c *Controller) generateUniqueLetters(count int, disallowed map[string]bool) []string {
	var pool []string
	for _, r := range alphabet {
		letter := string(r)
		if !disallowed[letter] {
			pool = append(pool, letter)
		}
	}
	c.random.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count <= len(pool) {
		return pool[:count]
	}
	out := make([]string, len(pool), count)
	copy(out, pool)
	for len(out) < count {
		if len(pool) == 0 {
			out = append(out, "A")
			continue
		}
		out = append(out, pool[c.random.Intn(len(pool))])
	}
	return out
}

// startPhaseTimer stamps the phase deadline and arms the wake-up
func (c *Controller) startPhaseTimer(room *model.Room) {
	now := c.clock.Now()
	startedAt := now.UnixMilli()
	endsAt := startedAt + model.PhaseTimerDuration.Milliseconds()
	room.StartedAt = &startedAt
	room.EndsAt = &endsAt
	c.scheduler.Set(room.Code, now.Add(model.PhaseTimerDuration))
}

// resolveDraftPhase closes the draft: players who never picked are
// auto-assigned a random offered letter, single-selector letters are
// awarded outright, and multi-selector letters queue for auction in the
// order their contention was discovered.
func (c *Controller) resolveDraftPhase(room *model.Room) {
	for _, playerID := range room.PlayersWithoutExtraLetter() {
		if _, ok := room.DraftSelections[playerID]; ok {
			continue
		}
		if len(room.DraftLetters) == 0 {
			continue
		}
		pick := room.DraftLetters[c.random.Intn(len(room.DraftLetters))]
		room.DraftSelections[playerID] = pick.ID
	}

	// Group selectors per letter in player join order so contention
	// discovery is deterministic.
	selectors := make(map[model.LetterID][]model.PlayerID)
	var letterOrder []model.LetterID
	for _, player := range room.Players {
		if player.ExtraLetter != "" {
			continue
		}
		letterID, ok := room.DraftSelections[player.ID]
		if !ok {
			continue
		}
		if _, seen := selectors[letterID]; !seen {
			letterOrder = append(letterOrder, letterID)
		}
		selectors[letterID] = append(selectors[letterID], player.ID)
	}

	lookup := make(map[model.LetterID]string, len(room.DraftLetters))
	for _, offer := range room.DraftLetters {
		lookup[offer.ID] = offer.Letter
	}

	room.ContestedLetterIDs = []model.LetterID{}
	for _, letterID := range letterOrder {
		picked := selectors[letterID]
		if len(picked) == 1 {
			letter, ok := lookup[letterID]
			if !ok {
				continue
			}
			c.assignExtraLetter(room, picked[0], letter)
			continue
		}
		room.ContestedLetterIDs = append(room.ContestedLetterIDs, letterID)
	}

	if len(room.ContestedLetterIDs) == 0 || len(room.PlayersWithoutExtraLetter()) == 0 {
		c.continueMarketOrPrediction(room)
		return
	}

	room.CurrentAuctionLetterID = room.ContestedLetterIDs[0]
	room.AuctionBids = make(map[model.PlayerID]*model.AuctionBid)
	room.Phase = model.PhaseLetterAuction
	c.startPhaseTimer(room)
	room.UpdateStatusFromPhase()
}

// resolveAuctionPhase settles the letter currently on the block. Eligible
// players who never bid are treated as a zero bid; the highest stake wins,
// ties broken uniformly at random. Stakes were already charged at bid
// time and are not refunded.
func (c *Controller) resolveAuctionPhase(room *model.Room) {
	activeLetterID := room.CurrentAuctionLetterID
	if activeLetterID == "" {
		c.continueMarketOrPrediction(room)
		return
	}

	activeLetter := ""
	for _, offer := range room.DraftLetters {
		if offer.ID == activeLetterID {
			activeLetter = offer.Letter
			break
		}
	}
	if activeLetter == "" {
		room.CurrentAuctionLetterID = ""
		c.continueMarketOrPrediction(room)
		return
	}

	eligible := room.PlayersWithoutExtraLetter()
	for _, playerID := range eligible {
		if _, ok := room.AuctionBids[playerID]; ok {
			continue
		}
		room.AuctionBids[playerID] = &model.AuctionBid{
			PlayerID: playerID,
			LetterID: activeLetterID,
			Stake:    0,
		}
	}

	var letterBids []*model.AuctionBid
	for _, playerID := range eligible {
		bid, ok := room.AuctionBids[playerID]
		if !ok || bid.LetterID != activeLetterID {
			continue
		}
		letterBids = append(letterBids, bid)
	}

	if len(letterBids) > 0 {
		best := letterBids[0].Stake
		for _, bid := range letterBids {
			if bid.Stake > best {
				best = bid.Stake
			}
		}
		var leaders []*model.AuctionBid
		for _, bid := range letterBids {
			if bid.Stake == best {
				leaders = append(leaders, bid)
			}
		}
		winner := leaders[c.random.Intn(len(leaders))]
		c.assignExtraLetter(room, winner.PlayerID, activeLetter)

		c.logger.Info("auction letter awarded",
			slog.String("room", string(room.Code)),
			slog.String("letter_id", string(activeLetterID)),
			slog.String("winner", string(winner.PlayerID)),
			slog.Int("stake", winner.Stake),
		)
	}

	remaining := room.ContestedLetterIDs[:0]
	for _, letterID := range room.ContestedLetterIDs {
		if letterID != activeLetterID {
			remaining = append(remaining, letterID)
		}
	}
	room.ContestedLetterIDs = remaining
	room.CurrentAuctionLetterID = ""
	room.AuctionBids = make(map[model.PlayerID]*model.AuctionBid)

	if len(room.ContestedLetterIDs) > 0 && len(room.PlayersWithoutExtraLetter()) > 0 {
		room.CurrentAuctionLetterID = room.ContestedLetterIDs[0]
		room.Phase = model.PhaseLetterAuction
		c.startPhaseTimer(room)
		room.UpdateStatusFromPhase()
		return
	}

	c.continueMarketOrPrediction(room)
}

// continueMarketOrPrediction either regenerates a draft cycle for the
// players still lacking an extra letter or, once everyone holds one,
// enters the prediction phase.
func (c *Controller) continueMarketOrPrediction(room *model.Room) {
	if len(room.PlayersWithoutExtraLetter()) == 0 {
		c.enterPredictionPhase(room)
		return
	}

	room.DraftSelections = make(map[model.PlayerID]model.LetterID)
	room.AuctionBids = make(map[model.PlayerID]*model.AuctionBid)
	room.ContestedLetterIDs = []model.LetterID{}
	room.CurrentAuctionLetterID = ""
	room.DraftLetters = c.generateDraftLetters(room, len(room.PlayersWithoutExtraLetter()))
	room.Phase = model.PhaseLetterDraft
	c.startPhaseTimer(room)
	room.UpdateStatusFromPhase()
}

func (c *Controller) enterPredictionPhase(room *model.Room) {
	c.ensureAllPlayersHaveExtraLetter(room)
	room.Phase = model.PhasePrediction
	c.startPhaseTimer(room)
	room.UpdateStatusFromPhase()
}

// ensureAllPlayersHaveExtraLetter is the market-exhaustion fallback: any
// player still without a letter draws from the remaining pool, or failing
// that a fresh letter not already held by someone else.
func (c *Controller) ensureAllPlayersHaveExtraLetter(room *model.Room) {
	for _, playerID := range room.PlayersWithoutExtraLetter() {
		assigned := make(map[string]bool)
		for _, player := range room.Players {
			if player.ExtraLetter != "" {
				assigned[player.ExtraLetter] = true
			}
		}

		fallback := ""
		if n := len(room.MarketLetterPool); n > 0 {
			fallback = room.MarketLetterPool[n-1]
			room.MarketLetterPool = room.MarketLetterPool[:n-1]
		} else if fresh := c.generateUniqueLetters(1, assigned); len(fresh) > 0 {
			fallback = fresh[0]
		} else {
			fallback = "A"
		}
		c.assignExtraLetter(room, playerID, fallback)
	}
}

// startActiveRound rolls a playable board, starts the round clock, and
// arms the wake-up that will finish the round.
func (c *Controller) startActiveRound(room *model.Room) {
	room.Board = c.boardService.RollSmartBoard(c.dictionary.Words())

	now := c.clock.Now()
	startedAt := now.UnixMilli()
	endsAt := startedAt + model.RoundDuration.Milliseconds()
	room.StartedAt = &startedAt
	room.EndsAt = &endsAt
	room.Phase = model.PhaseActive
	room.UpdateStatusFromPhase()
	c.scheduler.Set(room.Code, now.Add(model.RoundDuration))

	c.logger.Info("round started",
		slog.String("room", string(room.Code)),
		slog.Int("round", room.CurrentRound),
	)
}

// finishActiveRound ends the round and applies prediction payouts. A call
// outside the active phase is a no-op, which makes the lazy expiry path
// and the wake-up path safe to race.
func (c *Controller) finishActiveRound(room *model.Room) {
	if room.Phase != model.PhaseActive {
		return
	}
	room.StartedAt = nil
	room.EndsAt = nil
	c.applyPredictionPayouts(room)
	room.Phase = model.PhaseRoundResults
	room.UpdateStatusFromPhase()

	c.logger.Info("round finished",
		slog.String("room", string(room.Code)),
		slog.Int("round", room.CurrentRound),
	)
}

// applyPredictionPayouts settles the round's prediction market against the
// players' final word counts
func (c *Controller) applyPredictionPayouts(room *model.Room) {
	if len(room.PredictionBets) == 0 {
		return
	}

	actual := make(map[model.PlayerID]int, len(room.Players))
	var bets []*model.PredictionBet
	for _, player := range room.Players {
		actual[player.ID] = player.RoundWordCount
		if bet, ok := room.PredictionBets[player.ID]; ok {
			bets = append(bets, bet)
		}
	}

	for _, outcome := range economy.SettlePredictionBets(bets, actual) {
		player := room.FindPlayer(outcome.PlayerID)
		if player == nil {
			continue
		}
		player.Score += outcome.Adjustment
		player.RoundPredictionPoints += outcome.Adjustment
	}
}

// assignExtraLetter grants a letter to a player who has none and retires
// it from the market pool
func (c *Controller) assignExtraLetter(room *model.Room, playerID model.PlayerID, letter string) {
	player := room.FindPlayer(playerID)
	if player == nil || player.ExtraLetter != "" {
		return
	}
	player.ExtraLetter = letter

	for i, pooled := range room.MarketLetterPool {
		if pooled == letter {
			room.MarketLetterPool = append(room.MarketLetterPool[:i], room.MarketLetterPool[i+1:]...)
			break
		}
	}
}
