package factory

import (
	"time"

	"github.com/AeroX2/wordmarket/internal/dependencies/mocks"
	"github.com/AeroX2/wordmarket/internal/storage/memory"
	"github.com/AeroX2/wordmarket/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked clock and
// randomness. The production timer scheduler is kept: with the mock clock
// its delays never elapse on their own, so tests drive wake-ups through
// the controller's alarm entry point.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small word list for testing. With the mock
// random every generated board is a uniform grid, so repeated-letter
// words are included to keep boards solvable in tests.
func (t *TestApp) LoadTestDictionary() {
	t.DictionaryService.LoadWords([]string{
		"ace", "act", "air", "ant", "art", "bar", "bat", "bee", "car", "cat",
		"dog", "ear", "eat", "eee", "eeee", "far", "fit", "fox", "hat", "ice",
		"jam", "key", "lap", "map", "net", "oak", "pen", "rat", "sea", "sun",
		"tap", "tea", "tin", "toe", "urn", "van", "wax", "yes", "zip",
		"area", "bird", "card", "door", "face", "gold", "hand", "lake", "moon",
		"rain", "star", "tree", "wind", "word",
		"beach", "cloud", "dream", "earth", "flame", "grass", "house", "light",
		"mount", "ocean", "plant", "river", "stone", "water",
	})
}
