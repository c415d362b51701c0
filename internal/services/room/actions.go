package room

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/board"
)

// PredictionBetInput carries one prediction action: either a bet on
// another player's word count or an explicit skip. Numeric fields default
// to -1 when absent from the request so missing and invalid values reject
// the same way.
type PredictionBetInput struct {
	BettorID       model.PlayerID
	Skip           bool
	TargetPlayerID model.PlayerID
	PredictedWords int
	Stake          int
}

// ConfigureRounds sets the room's total round count. Lobby only.
func (c *Controller) ConfigureRounds(ctx context.Context, code model.RoomCode, totalRounds int) (model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	if room.Phase != model.PhaseLobby {
		return model.RoomSnapshot{}, model.NewValidationError("Rounds can only be configured in lobby.")
	}
	if totalRounds < 1 || totalRounds > model.MaxTotalRounds {
		return model.RoomSnapshot{}, model.NewValidationError(fmt.Sprintf("totalRounds must be between 1 and %d.", model.MaxTotalRounds))
	}

	room.TotalRounds = totalRounds
	if err := c.commit(ctx, room); err != nil {
		return model.RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// Advance is the context-sensitive start/advance action. Depending on the
// current phase it begins the game, forces draft or auction resolution,
// forces the round to start, or records a round-results ready
// acknowledgement.
func (c *Controller) Advance(ctx context.Context, code model.RoomCode, playerID model.PlayerID, totalRounds *int) (model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	switch room.Phase {
	case model.PhaseLobby:
		if totalRounds != nil {
			if *totalRounds < 1 || *totalRounds > model.MaxTotalRounds {
				return model.RoomSnapshot{}, model.NewValidationError(fmt.Sprintf("totalRounds must be between 1 and %d.", model.MaxTotalRounds))
			}
			room.TotalRounds = *totalRounds
		}
		room.CurrentRound = 1
		c.prepareRound(room)
		room.Phase = model.PhaseLetterDraft
		c.startPhaseTimer(room)
		room.UpdateStatusFromPhase()

		c.logger.Info("game started",
			slog.String("room", string(code)),
			slog.Int("total_rounds", room.TotalRounds),
		)

	case model.PhaseLetterDraft:
		c.resolveDraftPhase(room)

	case model.PhaseLetterAuction:
		c.resolveAuctionPhase(room)

	case model.PhasePrediction:
		c.startActiveRound(room)

	case model.PhaseRoundResults:
		if room.FindPlayer(playerID) == nil {
			return model.RoomSnapshot{}, model.NewValidationError("Invalid player.")
		}
		room.RoundReadyIDs[playerID] = true
		if len(room.RoundReadyIDs) >= len(room.Players) {
			if room.CurrentRound < room.TotalRounds {
				room.CurrentRound++
				c.prepareRound(room)
				room.Phase = model.PhaseLetterDraft
				c.startPhaseTimer(room)
			} else {
				room.Phase = model.PhaseFinished

				c.logger.Info("game finished",
					slog.String("room", string(code)),
					slog.Int("rounds", room.TotalRounds),
				)
			}
			room.UpdateStatusFromPhase()
		}

	default:
		return model.RoomSnapshot{}, model.NewValidationError("Cannot start from current phase.")
	}

	if err := c.commit(ctx, room); err != nil {
		return model.RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// PlacePredictionBet records one player's bet or skip. The stake is
// escrowed immediately; the phase auto-advances once every player has
// resolved.
func (c *Controller) PlacePredictionBet(ctx context.Context, code model.RoomCode, input PredictionBetInput) (model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	if room.Phase != model.PhasePrediction {
		return model.RoomSnapshot{}, model.NewValidationError("Prediction phase is not active.")
	}

	bettor := room.FindPlayer(input.BettorID)
	if bettor == nil {
		return model.RoomSnapshot{}, model.NewValidationError("Invalid bettor.")
	}
	if room.PredictionSkips[input.BettorID] || room.PredictionBets[input.BettorID] != nil {
		return model.RoomSnapshot{}, model.NewValidationError("Prediction already submitted.")
	}

	if input.Skip {
		room.PredictionSkips[input.BettorID] = true
	} else {
		if room.FindPlayer(input.TargetPlayerID) == nil {
			return model.RoomSnapshot{}, model.NewValidationError("Invalid target player.")
		}
		if input.TargetPlayerID == input.BettorID {
			return model.RoomSnapshot{}, model.NewValidationError("You must bet on another player.")
		}
		if input.PredictedWords < 0 {
			return model.RoomSnapshot{}, model.NewValidationError("predictedWords must be >= 0.")
		}
		if input.Stake <= 0 {
			return model.RoomSnapshot{}, model.NewValidationError("stake must be > 0.")
		}
		if bettor.Score < input.Stake {
			return model.RoomSnapshot{}, model.NewValidationError("Not enough points to place that bet.")
		}

		bettor.Score -= input.Stake
		room.PredictionBets[input.BettorID] = &model.PredictionBet{
			BettorID:       input.BettorID,
			TargetPlayerID: input.TargetPlayerID,
			PredictedWords: input.PredictedWords,
			Stake:          input.Stake,
		}
	}

	if room.AllPredictionsResolved() {
		c.startActiveRound(room)
	}

	if err := c.commit(ctx, room); err != nil {
		return model.RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// SubmitDraftPick records a player's choice among the offered draft
// letters. The draft resolves as soon as every eligible player has picked.
func (c *Controller) SubmitDraftPick(ctx context.Context, code model.RoomCode, playerID model.PlayerID, letterID model.LetterID) (model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	if room.Phase != model.PhaseLetterDraft {
		return model.RoomSnapshot{}, model.NewValidationError("Letter draft phase is not active.")
	}

	player := room.FindPlayer(playerID)
	if player == nil {
		return model.RoomSnapshot{}, model.NewValidationError("Invalid player.")
	}
	if player.ExtraLetter != "" {
		return model.RoomSnapshot{}, model.NewValidationError("You already have an extra letter this round.")
	}
	if _, ok := room.DraftSelections[playerID]; ok {
		return model.RoomSnapshot{}, model.NewValidationError("Draft pick already submitted.")
	}

	offered := false
	for _, offer := range room.DraftLetters {
		if offer.ID == letterID {
			offered = true
			break
		}
	}
	if !offered {
		return model.RoomSnapshot{}, model.NewValidationError("Invalid letter selection.")
	}

	room.DraftSelections[playerID] = letterID
	if room.AllEligiblePlayersPicked() {
		c.resolveDraftPhase(room)
	}

	if err := c.commit(ctx, room); err != nil {
		return model.RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// SubmitAuctionBid stakes points on the letter currently on the block.
// The stake is charged immediately and never refunded; the auction
// resolves as soon as every eligible player has bid.
func (c *Controller) SubmitAuctionBid(ctx context.Context, code model.RoomCode, playerID model.PlayerID, stake int) (model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	if room.Phase != model.PhaseLetterAuction {
		return model.RoomSnapshot{}, model.NewValidationError("Letter auction phase is not active.")
	}

	player := room.FindPlayer(playerID)
	if player == nil {
		return model.RoomSnapshot{}, model.NewValidationError("Invalid player.")
	}
	if player.ExtraLetter != "" {
		return model.RoomSnapshot{}, model.NewValidationError("Players with an extra letter cannot bid.")
	}
	if _, ok := room.AuctionBids[playerID]; ok {
		return model.RoomSnapshot{}, model.NewValidationError("Auction bid already submitted.")
	}
	if stake < 0 {
		return model.RoomSnapshot{}, model.NewValidationError("stake must be >= 0.")
	}
	if stake > player.Score {
		return model.RoomSnapshot{}, model.NewValidationError("Not enough points to place that bid.")
	}
	letterID := room.CurrentAuctionLetterID
	if letterID == "" {
		return model.RoomSnapshot{}, model.NewValidationError("No contested letter is currently being auctioned.")
	}

	player.Score -= stake
	room.AuctionBids[playerID] = &model.AuctionBid{
		PlayerID: playerID,
		LetterID: letterID,
		Stake:    stake,
	}

	if room.AllEligiblePlayersBid() {
		c.resolveAuctionPhase(room)
	}

	if err := c.commit(ctx, room); err != nil {
		return model.RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// SubmitWord scores a word against the live board. Rejections come back
// inside the result rather than as errors; an error return means the room
// could not be loaded or persisted. An expired deadline discovered here
// finalizes the round before rejecting, so a stale wake-up timer can
// never strand an active round.
func (c *Controller) SubmitWord(ctx context.Context, code model.RoomCode, playerID model.PlayerID, rawWord string) (model.SubmitResult, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.SubmitResult{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.room

	player := room.FindPlayer(playerID)
	if player == nil {
		return model.SubmitResult{OK: false, Message: "Player not found."}, nil
	}

	now := c.clock.Now()
	if room.Phase != model.PhaseActive || room.EndsAt == nil || now.UnixMilli() > *room.EndsAt {
		if room.Phase == model.PhaseActive {
			c.finishActiveRound(room)
			if err := c.commit(ctx, room); err != nil {
				return model.SubmitResult{}, err
			}
		}
		state := room.Snapshot()
		return model.SubmitResult{OK: false, Message: "Round is not active.", State: &state}, nil
	}

	word := board.NormalizeWord(rawWord)
	validation := board.ValidateWord(room.Board, word, player.ExtraLetter)
	if !validation.Valid {
		return model.SubmitResult{OK: false, Message: validation.Reason}, nil
	}

	if !c.dictionary.IsWord(word) {
		return model.SubmitResult{OK: false, Message: "Word not found in dictionary."}, nil
	}

	if player.HasWord(word) {
		return model.SubmitResult{OK: false, Message: "Word already submitted."}, nil
	}

	scoreDelta := board.ScoreWord(word)
	if scoreDelta < 1 {
		return model.SubmitResult{OK: false, Message: "Word is too short to score."}, nil
	}

	player.AddWord(word, scoreDelta)

	if err := c.commit(ctx, room); err != nil {
		return model.SubmitResult{}, err
	}

	state := room.Snapshot()
	return model.SubmitResult{
		OK:         true,
		Message:    fmt.Sprintf("Accepted %s (+%d)", word, scoreDelta),
		ScoreDelta: scoreDelta,
		Word:       word,
		Path:       validation.Path,
		State:      &state,
	}, nil
}
