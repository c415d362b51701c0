package model

// Board is a flat row-major grid of single uppercase letters. A freshly
// created room has an empty board until the first active round begins.
type Board []string

// Size returns the side length of the square grid, or 0 if the cell count
// is not a perfect square
func (b Board) Size() int {
	for size := 0; size*size <= len(b); size++ {
		if size*size == len(b) {
			return size
		}
	}
	return 0
}

// ExtraLetterPathIndex marks a path position satisfied by the player's extra
// letter rather than a board cell
const ExtraLetterPathIndex = -1

// ValidationResult is the outcome of tracing a word on a board
type ValidationResult struct {
	Valid           bool   `json:"valid"`
	Reason          string `json:"reason,omitempty"`
	UsedExtraLetter bool   `json:"usedExtraLetter,omitempty"`

	// Board cell indices in word order; ExtraLetterPathIndex where the
	// extra letter was used. Only attached when geometrically connected.
	Path []int `json:"path,omitempty"`
}
