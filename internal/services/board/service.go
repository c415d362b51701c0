package board

import (
	"strings"

	"github.com/AeroX2/wordmarket/internal/dependencies/random"
	"github.com/AeroX2/wordmarket/internal/model"
)

// letterBag is the weighted draw bag for board generation, mirroring
// natural English letter frequency (13 E's down to single K/J/X/Q/Z).
var letterBag = buildLetterBag()

func buildLetterBag() []string {
	weights := []struct {
		letter string
		count  int
	}{
		{"E", 13}, {"A", 9}, {"I", 9}, {"O", 8},
		{"N", 6}, {"R", 6}, {"T", 6},
		{"L", 4}, {"S", 4}, {"U", 4},
		{"D", 3}, {"G", 3}, {"M", 3},
		{"B", 2}, {"C", 2}, {"F", 2}, {"H", 2},
		{"P", 2}, {"V", 2}, {"W", 2}, {"Y", 2},
		{"K", 1}, {"J", 1}, {"X", 1}, {"Q", 1}, {"Z", 1},
	}
	var bag []string
	for _, w := range weights {
		for i := 0; i < w.count; i++ {
			bag = append(bag, w.letter)
		}
	}
	return bag
}

// neighborOffsets is the fixed 8-directional search order for the DFS
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board generation tuning: candidates are drawn until one validates enough
// sampled dictionary words, bounding worst-case cost while favoring
// playable boards.
const (
	maxBoardAttempts   = 40
	minViableWords     = 20
	viabilitySampleMax = 900
	viabilityMaxLen    = 9
)

// Service generates boards. Word validation and scoring are pure package
// functions; only generation needs randomness.
type Service struct {
	random random.Random
}

// New creates a new board service
func New(random random.Random) *Service {
	return &Service{random: random}
}

// ScoreWord returns the point value of a word by length
func ScoreWord(word string) int {
	length := len(word)
	switch {
	case length < 3:
		return 0
	case length <= 4:
		return 1
	case length == 5:
		return 2
	case length == 6:
		return 3
	case length == 7:
		return 5
	default:
		return 11
	}
}

// NormalizeWord trims and uppercases a raw submission
func NormalizeWord(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// RollBoard draws an unweighted-viability board straight from the letter bag
func (s *Service) RollBoard() model.Board {
	board := make(model.Board, model.BoardSize*model.BoardSize)
	for i := range board {
		board[i] = letterBag[s.random.Intn(len(letterBag))]
	}
	return board
}

// RollSmartBoard draws candidate boards and keeps the one that validates
// the most sampled dictionary words, returning early once a candidate
// clears the viability threshold.
func (s *Service) RollSmartBoard(dictionaryWords []string) model.Board {
	best := s.RollBoard()
	bestScore := -1

	for i := 0; i < maxBoardAttempts; i++ {
		candidate := s.RollBoard()
		score := s.estimateViability(candidate, dictionaryWords)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
		if score >= minViableWords {
			return candidate
		}
	}

	return best
}

// estimateViability counts how many stride-sampled dictionary words can be
// formed on the board. Long words are skipped; they rarely validate and
// dominate search cost.
func (s *Service) estimateViability(board model.Board, dictionaryWords []string) int {
	if len(dictionaryWords) == 0 {
		return 0
	}
	sampleSize := len(dictionaryWords)
	if sampleSize > viabilitySampleMax {
		sampleSize = viabilitySampleMax
	}
	start := s.random.Intn(len(dictionaryWords))
	step := len(dictionaryWords) / sampleSize
	if step < 1 {
		step = 1
	}

	hits := 0
	for i := 0; i < sampleSize; i++ {
		word := dictionaryWords[(start+i*step)%len(dictionaryWords)]
		if len(word) > viabilityMaxLen {
			continue
		}
		if ValidateWord(board, word, "").Valid {
			hits++
		}
	}
	return hits
}

// ValidateWord decides whether a word can be traced on the board with at
// most one substitution by the given extra letter. It returns the first
// path found searching cells in index order with a fixed neighbor order;
// there is no shortest-path guarantee, only existence.
func ValidateWord(board model.Board, word string, extraLetter string) model.ValidationResult {
	normalized := NormalizeWord(word)
	extra := normalizeExtraLetter(extraLetter)

	if len(normalized) < 3 {
		return model.ValidationResult{Valid: false, Reason: "Words must be at least 3 letters."}
	}

	tokens := tokenizeForBoard(normalized)
	if len(tokens) == 0 {
		return model.ValidationResult{Valid: false, Reason: "Invalid word."}
	}

	size := board.Size()
	if size == 0 {
		return model.ValidationResult{Valid: false, Reason: "Board is invalid."}
	}

	for i := range board {
		visited := make(map[int]bool)
		var path []int
		if searchWithPath(board, tokens, i, 0, visited, extra, false, &path) {
			usedExtra := false
			for _, idx := range path {
				if idx == model.ExtraLetterPathIndex {
					usedExtra = true
					break
				}
			}
			result := model.ValidationResult{Valid: true, UsedExtraLetter: usedExtra}
			if isPathConnected(size, path) {
				result.Path = path
			}
			return result
		}
	}

	return model.ValidationResult{Valid: false, Reason: "Word cannot be formed on this board."}
}

// searchWithPath is the DFS step: the occupied cell must carry the needed
// token, or the token matches the unused extra letter, in which case the
// step is recorded as a virtual position and the cell stays revisitable.
func searchWithPath(
	board model.Board,
	tokens []string,
	index int,
	tokenIndex int,
	visited map[int]bool,
	extraLetter string,
	usedExtraLetter bool,
	path *[]int,
) bool {
	if visited[index] {
		return false
	}

	needed := tokens[tokenIndex]
	cell := ""
	if index >= 0 && index < len(board) {
		cell = board[index]
	}

	isExtraHere := cell != needed && extraLetter != "" && !usedExtraLetter && needed == extraLetter
	if cell != needed && !isExtraHere {
		return false
	}
	nextUsedExtra := usedExtraLetter || isExtraHere

	if isExtraHere {
		*path = append(*path, model.ExtraLetterPathIndex)
	} else {
		*path = append(*path, index)
	}

	if tokenIndex == len(tokens)-1 {
		return true
	}

	if !isExtraHere {
		visited[index] = true
	}

	size := board.Size()
	row := index / size
	col := index % size

	for _, offset := range neighborOffsets {
		nextRow := row + offset[0]
		nextCol := col + offset[1]
		if nextRow < 0 || nextRow >= size || nextCol < 0 || nextCol >= size {
			continue
		}

		nextIndex := nextRow*size + nextCol
		if searchWithPath(board, tokens, nextIndex, tokenIndex+1, visited, extraLetter, nextUsedExtra, path) {
			if !isExtraHere {
				delete(visited, index)
			}
			return true
		}
	}

	*path = (*path)[:len(*path)-1]
	if !isExtraHere {
		delete(visited, index)
	}
	return false
}

// isPathConnected re-validates a found path geometrically. Consecutive real
// cells must be adjacent; when the extra-letter substitution sits between
// two real cells, sharing a common neighbor is enough, since the
// substitution models an inserted letter rather than a board cell.
func isPathConnected(size int, path []int) bool {
	prev := -1
	havePrev := false
	for i, idx := range path {
		if idx == model.ExtraLetterPathIndex {
			continue
		}
		if havePrev {
			hadExtraBetween := i >= 2 && path[i-1] == model.ExtraLetterPathIndex
			if hadExtraBetween {
				if !shareNeighbor(size, prev, idx) {
					return false
				}
			} else if !areAdjacent(size, prev, idx) {
				return false
			}
		}
		prev = idx
		havePrev = true
	}
	return true
}

// areAdjacent reports 8-directional adjacency of two distinct cells
func areAdjacent(size, a, b int) bool {
	dr := (a / size) - (b / size)
	dc := (a % size) - (b % size)
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}

// shareNeighbor reports whether some cell is adjacent to both a and b
func shareNeighbor(size, a, b int) bool {
	for _, offset := range neighborOffsets {
		row := a/size + offset[0]
		col := a%size + offset[1]
		if row < 0 || row >= size || col < 0 || col >= size {
			continue
		}
		if areAdjacent(size, row*size+col, b) {
			return true
		}
	}
	return false
}

// tokenizeForBoard converts a normalized word into placeable tokens. The
// digraph "QU" collapses to the single token "Q"; a bare "Q" or any
// non-alphabetic character makes the word untokenizable.
func tokenizeForBoard(word string) []string {
	var tokens []string
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch == 'Q' {
			if i+1 >= len(word) || word[i+1] != 'U' {
				return nil
			}
			tokens = append(tokens, "Q")
			i++
			continue
		}
		if ch < 'A' || ch > 'Z' {
			return nil
		}
		tokens = append(tokens, string(ch))
	}
	return tokens
}

// normalizeExtraLetter reduces an extra-letter value to a single uppercase
// letter, or empty when unusable
func normalizeExtraLetter(letter string) string {
	normalized := NormalizeWord(letter)
	if len(normalized) != 1 {
		return ""
	}
	if normalized[0] < 'A' || normalized[0] > 'Z' {
		return ""
	}
	return normalized
}
