package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	Name string `json:"name"`
}

// ConfigureRoundsRequest is the request body for setting the round count.
// TotalRounds is a pointer so a missing field is distinguishable from 0.
type ConfigureRoundsRequest struct {
	TotalRounds *int `json:"totalRounds"`
}

// StartRequest is the request body for the context-sensitive
// start/advance action. PlayerID is only required when acknowledging
// round results; TotalRounds is only honored when starting from the
// lobby.
type StartRequest struct {
	PlayerID    string `json:"playerId"`
	TotalRounds *int   `json:"totalRounds"`
}

// PredictionBetRequest is the request body for a prediction bet or skip
type PredictionBetRequest struct {
	BettorID       string `json:"bettorId"`
	Skip           bool   `json:"skip"`
	TargetPlayerID string `json:"targetPlayerId"`
	PredictedWords *int   `json:"predictedWords"`
	Stake          *int   `json:"stake"`
}

// DraftPickRequest is the request body for claiming a draft letter
type DraftPickRequest struct {
	PlayerID string `json:"playerId"`
	LetterID string `json:"letterId"`
}

// AuctionBidRequest is the request body for bidding on a contested letter
type AuctionBidRequest struct {
	PlayerID string `json:"playerId"`
	Stake    *int   `json:"stake"`
}

// SubmitWordRequest is the request body for submitting a word
type SubmitWordRequest struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
}
