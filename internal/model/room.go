package model

import "time"

// RoomCode is the human-readable identifier players use to join a room
type RoomCode string

// Phase represents one step of the room's state machine
type Phase string

const (
	PhaseLobby         Phase = "lobby"          // Waiting for the game to start
	PhaseLetterDraft   Phase = "letter_draft"   // Players picking extra letters
	PhaseLetterAuction Phase = "letter_auction" // Contested letter up for bids
	PhasePrediction    Phase = "prediction"     // Players betting on word counts
	PhaseActive        Phase = "active"         // Word hunting on the live board
	PhaseRoundResults  Phase = "round_results"  // Scores shown, waiting for ready
	PhaseFinished      Phase = "finished"       // Terminal
)

// Status is the coarse room status derived from the phase
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Game pacing and economy constants
const (
	BoardSize          = 5
	RoundDuration      = 120 * time.Second
	PhaseTimerDuration = 30 * time.Second
	DefaultTotalRounds = 3
	MaxTotalRounds     = 12
	StartingPoints     = 10
)

// Room is the aggregate root for one game session. It holds both the
// externally visible state and the internal-only fields (draft selections,
// market letter pool) that are persisted but never exposed in snapshots.
//
// The whole struct is overwritten in storage as one JSON record on every
// state-changing action.
type Room struct {
	Code         RoomCode `json:"roomId"`
	Board        Board    `json:"board"`
	Phase        Phase    `json:"phase"`
	Status       Status   `json:"status"`
	TotalRounds  int      `json:"totalRounds"`
	CurrentRound int      `json:"currentRound"`

	// Phase deadline, epoch millis. Nil outside timed phases.
	StartedAt *int64 `json:"startedAt"`
	EndsAt    *int64 `json:"endsAt"`

	// Players in join order. Players are never removed.
	Players []*Player `json:"players"`

	DraftLetters           []DraftLetter `json:"draftLetters"`
	ContestedLetterIDs     []LetterID    `json:"contestedLetterIds"`
	CurrentAuctionLetterID LetterID      `json:"currentAuctionLetterId"`

	PredictionBets  map[PlayerID]*PredictionBet `json:"predictionBets"`
	PredictionSkips map[PlayerID]bool           `json:"predictionSkips"`
	DraftSelections map[PlayerID]LetterID       `json:"draftSelections"`
	AuctionBids     map[PlayerID]*AuctionBid    `json:"auctionBids"`
	RoundReadyIDs   map[PlayerID]bool           `json:"roundReadyPlayerIds"`

	// Remaining unique letters for this round's draft offers and fallbacks
	MarketLetterPool []string `json:"marketLetterPool"`
}

// NewRoom creates an empty room in the lobby phase
func NewRoom(code RoomCode) *Room {
	return &Room{
		Code:            code,
		Board:           Board{},
		Phase:           PhaseLobby,
		Status:          StatusLobby,
		TotalRounds:     DefaultTotalRounds,
		PredictionBets:  make(map[PlayerID]*PredictionBet),
		PredictionSkips: make(map[PlayerID]bool),
		DraftSelections: make(map[PlayerID]LetterID),
		AuctionBids:     make(map[PlayerID]*AuctionBid),
		RoundReadyIDs:   make(map[PlayerID]bool),
	}
}

// FindPlayer returns the player with the given id, or nil
func (r *Room) FindPlayer(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayersWithoutExtraLetter returns ids of players still lacking an extra
// letter, in join order
func (r *Room) PlayersWithoutExtraLetter() []PlayerID {
	var ids []PlayerID
	for _, p := range r.Players {
		if p.ExtraLetter == "" {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// AllPredictionsResolved reports whether every player has either bet or
// skipped this round
func (r *Room) AllPredictionsResolved() bool {
	return len(r.PredictionBets)+len(r.PredictionSkips) >= len(r.Players)
}

// AllEligiblePlayersPicked reports whether every player without an extra
// letter has submitted a draft pick
func (r *Room) AllEligiblePlayersPicked() bool {
	for _, id := range r.PlayersWithoutExtraLetter() {
		if _, ok := r.DraftSelections[id]; !ok {
			return false
		}
	}
	return true
}

// AllEligiblePlayersBid reports whether every player without an extra letter
// has submitted an auction bid
func (r *Room) AllEligiblePlayersBid() bool {
	for _, id := range r.PlayersWithoutExtraLetter() {
		if _, ok := r.AuctionBids[id]; !ok {
			return false
		}
	}
	return true
}

// UpdateStatusFromPhase recomputes the derived status field
func (r *Room) UpdateStatusFromPhase() {
	switch r.Phase {
	case PhaseActive:
		r.Status = StatusActive
	case PhaseFinished:
		r.Status = StatusFinished
	default:
		r.Status = StatusLobby
	}
}

// DeadlinePassed reports whether the phase deadline exists and has elapsed
func (r *Room) DeadlinePassed(now time.Time) bool {
	return r.EndsAt != nil && now.UnixMilli() >= *r.EndsAt
}
