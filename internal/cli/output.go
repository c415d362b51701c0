package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinedRoom:
		o.printJoinedRoom(v)
	case RoomState:
		o.printRoomState(v)
	case SubmitOutcome:
		o.printSubmitOutcome(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// JoinedRoom is returned by room create and join
type JoinedRoom struct {
	PlayerID string    `json:"playerId"`
	State    RoomState `json:"state"`
}

// StateEnvelope wraps a state fetch
type StateEnvelope struct {
	State RoomState `json:"state"`
}

// ActionResult is returned by state-changing game actions
type ActionResult struct {
	OK    bool      `json:"ok"`
	State RoomState `json:"state"`
}

// SubmitOutcome is the result of a word submission
type SubmitOutcome struct {
	OK         bool       `json:"ok"`
	Message    string     `json:"message"`
	ScoreDelta int        `json:"scoreDelta,omitempty"`
	Word       string     `json:"word,omitempty"`
	Path       []int      `json:"path,omitempty"`
	State      *RoomState `json:"state,omitempty"`
}

// RoomState mirrors the API's room snapshot
type RoomState struct {
	RoomID                 string          `json:"roomId"`
	Board                  []string        `json:"board"`
	Status                 string          `json:"status"`
	Phase                  string          `json:"phase"`
	TotalRounds            int             `json:"totalRounds"`
	CurrentRound           int             `json:"currentRound"`
	StartedAt              *int64          `json:"startedAt"`
	EndsAt                 *int64          `json:"endsAt"`
	Players                []PlayerState   `json:"players"`
	DraftLetters           []DraftLetter   `json:"draftLetters"`
	ContestedLetterIDs     []string        `json:"contestedLetterIds"`
	CurrentAuctionLetterID *string         `json:"currentAuctionLetterId"`
	PredictionBets         []PredictionBet `json:"predictionBets"`
	PredictionSkips        []string        `json:"predictionSkips"`
	AuctionBids            []AuctionBid    `json:"auctionBids"`
	RoundReadyPlayerIDs    []string        `json:"roundReadyPlayerIds"`
}

// PlayerState mirrors the API's player snapshot
type PlayerState struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Score                 int      `json:"score"`
	Words                 []string `json:"words"`
	ExtraLetter           *string  `json:"extraLetter"`
	RoundWordCount        int      `json:"roundWordCount"`
	RoundBoardPoints      int      `json:"roundBoardPoints"`
	RoundPredictionPoints int      `json:"roundPredictionPoints"`
}

// DraftLetter is one purchasable letter on offer
type DraftLetter struct {
	ID     string `json:"id"`
	Letter string `json:"letter"`
}

// PredictionBet is one player's wager on another's word count
type PredictionBet struct {
	BettorID       string `json:"bettorId"`
	TargetPlayerID string `json:"targetPlayerId"`
	PredictedWords int    `json:"predictedWords"`
	Stake          int    `json:"stake"`
}

// AuctionBid is one player's bid on the contested letter
type AuctionBid struct {
	PlayerID string `json:"playerId"`
	LetterID string `json:"letterId"`
	Stake    int    `json:"stake"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinedRoom(j JoinedRoom) {
	fmt.Printf("Joined room %s as %s\n\n", j.State.RoomID, j.PlayerID)
	o.printRoomState(j.State)
}

func (o *Output) printRoomState(s RoomState) {
	fmt.Printf("Room: %s\n", s.RoomID)
	fmt.Printf("Phase: %s (%s)\n", s.Phase, s.Status)
	fmt.Printf("Round: %d of %d\n", s.CurrentRound, s.TotalRounds)

	if len(s.Board) > 0 {
		fmt.Println("\nBoard:")
		o.printBoard(s.Board)
	}

	if len(s.DraftLetters) > 0 {
		fmt.Println("\nLetters on offer:")
		for _, d := range s.DraftLetters {
			fmt.Printf("  %s  (%s)\n", d.Letter, d.ID)
		}
	}

	if s.CurrentAuctionLetterID != nil {
		fmt.Printf("\nUnder auction: %s\n", *s.CurrentAuctionLetterID)
		for _, b := range s.AuctionBids {
			fmt.Printf("  %s bid %d\n", b.PlayerID, b.Stake)
		}
	}

	if len(s.PredictionBets) > 0 {
		fmt.Println("\nPrediction bets:")
		for _, b := range s.PredictionBets {
			fmt.Printf("  %s: %d words by %s (stake %d)\n", b.BettorID, b.PredictedWords, b.TargetPlayerID, b.Stake)
		}
	}

	fmt.Printf("\nPlayers (%d):\n", len(s.Players))
	for _, p := range s.Players {
		extra := ""
		if p.ExtraLetter != nil {
			extra = fmt.Sprintf(" [extra: %s]", *p.ExtraLetter)
		}
		fmt.Printf("  %s (%s): %d points%s\n", p.Name, p.ID, p.Score, extra)
		if len(p.Words) > 0 {
			fmt.Printf("    words: %s\n", strings.Join(p.Words, ", "))
		}
	}
}

func (o *Output) printBoard(cells []string) {
	size := 0
	for size*size < len(cells) {
		size++
	}
	if size*size != len(cells) {
		return
	}

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < size; col++ {
			cell := cells[row*size+col]
			if cell == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", cell)
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printSubmitOutcome(r SubmitOutcome) {
	if r.OK {
		fmt.Printf("%s\n", r.Message)
		if len(r.Path) > 0 {
			fmt.Printf("Path: %v\n", r.Path)
		}
	} else {
		fmt.Printf("Rejected: %s\n", r.Message)
	}

	if r.State != nil && cfg != nil && cfg.Verbose {
		fmt.Println()
		o.printRoomState(*r.State)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
