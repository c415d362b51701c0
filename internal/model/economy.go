package model

// LetterID identifies a draft letter offer within a round
type LetterID string

// DraftLetter is a letter offered during the draft. Awarded letters remain
// in the round's historical list for lookup even after being claimed.
type DraftLetter struct {
	ID     LetterID `json:"id"`
	Letter string   `json:"letter"`
}

// PredictionBet is one player's wager on another player's word count for
// the round. The stake is deducted from the bettor when the bet is placed.
type PredictionBet struct {
	BettorID       PlayerID `json:"bettorId"`
	TargetPlayerID PlayerID `json:"targetPlayerId"`
	PredictedWords int      `json:"predictedWords"`
	Stake          int      `json:"stake"`
}

// AuctionBid is a sealed bid on the contested letter currently under
// auction. Stakes are deducted at bid time and never refunded.
type AuctionBid struct {
	PlayerID PlayerID `json:"playerId"`
	LetterID LetterID `json:"letterId"`
	Stake    int      `json:"stake"`
}
