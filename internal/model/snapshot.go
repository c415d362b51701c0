package model

import "sort"

// PlayerSnapshot is the externally visible view of a player
type PlayerSnapshot struct {
	ID                    PlayerID `json:"id"`
	Name                  string   `json:"name"`
	Score                 int      `json:"score"`
	Words                 []string `json:"words"`
	ExtraLetter           *string  `json:"extraLetter"`
	RoundWordCount        int      `json:"roundWordCount"`
	RoundBoardPoints      int      `json:"roundBoardPoints"`
	RoundPredictionPoints int      `json:"roundPredictionPoints"`
}

// RoomSnapshot is the complete externally visible state of a room at one
// instant. Field ordering and sort rules are a display/test contract.
type RoomSnapshot struct {
	RoomID                 RoomCode         `json:"roomId"`
	Board                  Board            `json:"board"`
	Status                 Status           `json:"status"`
	Phase                  Phase            `json:"phase"`
	TotalRounds            int              `json:"totalRounds"`
	CurrentRound           int              `json:"currentRound"`
	StartedAt              *int64           `json:"startedAt"`
	EndsAt                 *int64           `json:"endsAt"`
	Players                []PlayerSnapshot `json:"players"`
	DraftLetters           []DraftLetter    `json:"draftLetters"`
	ContestedLetterIDs     []LetterID       `json:"contestedLetterIds"`
	CurrentAuctionLetterID *LetterID        `json:"currentAuctionLetterId"`
	PredictionBets         []PredictionBet  `json:"predictionBets"`
	PredictionSkips        []PlayerID       `json:"predictionSkips"`
	AuctionBids            []AuctionBid     `json:"auctionBids"`
	RoundReadyPlayerIDs    []PlayerID       `json:"roundReadyPlayerIds"`
}

// Snapshot builds the externally visible view of the room. Players are
// sorted by descending score, word lists alphabetically, and the action
// collections by their owning player id.
func (r *Room) Snapshot() RoomSnapshot {
	players := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		words := make([]string, len(p.Words))
		copy(words, p.Words)
		sort.Strings(words)

		var extra *string
		if p.ExtraLetter != "" {
			letter := p.ExtraLetter
			extra = &letter
		}

		players = append(players, PlayerSnapshot{
			ID:                    p.ID,
			Name:                  p.Name,
			Score:                 p.Score,
			Words:                 words,
			ExtraLetter:           extra,
			RoundWordCount:        p.RoundWordCount,
			RoundBoardPoints:      p.RoundBoardPoints,
			RoundPredictionPoints: p.RoundPredictionPoints,
		})
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	bets := make([]PredictionBet, 0, len(r.PredictionBets))
	for _, bet := range r.PredictionBets {
		bets = append(bets, *bet)
	}
	sort.Slice(bets, func(i, j int) bool {
		return bets[i].BettorID < bets[j].BettorID
	})

	skips := make([]PlayerID, 0, len(r.PredictionSkips))
	for id := range r.PredictionSkips {
		skips = append(skips, id)
	}
	sort.Slice(skips, func(i, j int) bool { return skips[i] < skips[j] })

	bids := make([]AuctionBid, 0, len(r.AuctionBids))
	for _, bid := range r.AuctionBids {
		bids = append(bids, *bid)
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].PlayerID < bids[j].PlayerID
	})

	ready := make([]PlayerID, 0, len(r.RoundReadyIDs))
	for id := range r.RoundReadyIDs {
		ready = append(ready, id)
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	board := make(Board, len(r.Board))
	copy(board, r.Board)

	drafts := make([]DraftLetter, len(r.DraftLetters))
	copy(drafts, r.DraftLetters)

	contested := make([]LetterID, len(r.ContestedLetterIDs))
	copy(contested, r.ContestedLetterIDs)

	var auctionLetter *LetterID
	if r.CurrentAuctionLetterID != "" {
		id := r.CurrentAuctionLetterID
		auctionLetter = &id
	}

	return RoomSnapshot{
		RoomID:                 r.Code,
		Board:                  board,
		Status:                 r.Status,
		Phase:                  r.Phase,
		TotalRounds:            r.TotalRounds,
		CurrentRound:           r.CurrentRound,
		StartedAt:              r.StartedAt,
		EndsAt:                 r.EndsAt,
		Players:                players,
		DraftLetters:           drafts,
		ContestedLetterIDs:     contested,
		CurrentAuctionLetterID: auctionLetter,
		PredictionBets:         bets,
		PredictionSkips:        skips,
		AuctionBids:            bids,
		RoundReadyPlayerIDs:    ready,
	}
}

// RoomEvent is one message on a live connection
type RoomEvent struct {
	Type    string        `json:"type"`
	State   *RoomSnapshot `json:"state,omitempty"`
	Message string        `json:"message,omitempty"`
}

// StateEvent wraps a snapshot as a live-connection event
func StateEvent(state RoomSnapshot) RoomEvent {
	return RoomEvent{Type: "state", State: &state}
}

// ErrorEvent wraps an error message as a live-connection event
func ErrorEvent(message string) RoomEvent {
	return RoomEvent{Type: "error", Message: message}
}

// SubmitResult is the outcome of a word submission
type SubmitResult struct {
	OK         bool          `json:"ok"`
	Message    string        `json:"message"`
	ScoreDelta int           `json:"scoreDelta,omitempty"`
	Word       string        `json:"word,omitempty"`
	Path       []int         `json:"path,omitempty"`
	State      *RoomSnapshot `json:"state,omitempty"`
}
