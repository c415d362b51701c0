package model

import "strings"

// PlayerID uniquely identifies a player within a room
type PlayerID string

// MaxPlayerNameLength bounds display names at join time
const MaxPlayerNameLength = 24

// Player represents a room participant. Players are created at join/create
// time and persist for the room's lifetime.
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Score int      `json:"score"`

	// Words submitted this round, normalized, no duplicates
	Words []string `json:"words"`

	// Single bonus letter for the round, empty when not yet granted
	ExtraLetter string `json:"extraLetter"`

	// Per-round counters, reset when a new round's draft begins
	RoundWordCount        int `json:"roundWordCount"`
	RoundBoardPoints      int `json:"roundBoardPoints"`
	RoundPredictionPoints int `json:"roundPredictionPoints"`
}

// NewPlayer creates a player with the starting point balance
func NewPlayer(id PlayerID, name string) *Player {
	return &Player{
		ID:    id,
		Name:  SanitizePlayerName(name),
		Score: StartingPoints,
		Words: []string{},
	}
}

// SanitizePlayerName trims and bounds a display name, falling back to
// "Player" when nothing usable remains. The bound counts runes so a
// multi-byte name is never cut mid-character.
func SanitizePlayerName(name string) string {
	trimmed := strings.TrimSpace(name)
	if runes := []rune(trimmed); len(runes) > MaxPlayerNameLength {
		trimmed = string(runes[:MaxPlayerNameLength])
	}
	if trimmed == "" {
		return "Player"
	}
	return trimmed
}

// HasWord reports whether the player already submitted the given normalized
// word this round
func (p *Player) HasWord(word string) bool {
	for _, w := range p.Words {
		if w == word {
			return true
		}
	}
	return false
}

// AddWord records an accepted word and its score for the round
func (p *Player) AddWord(word string, score int) {
	p.Words = append(p.Words, word)
	p.Score += score
	p.RoundWordCount++
	p.RoundBoardPoints += score
}

// ResetRound clears all per-round state
func (p *Player) ResetRound() {
	p.Words = []string{}
	p.ExtraLetter = ""
	p.RoundWordCount = 0
	p.RoundBoardPoints = 0
	p.RoundPredictionPoints = 0
}
