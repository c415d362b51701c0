package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/AeroX2/wordmarket/internal/storage"
)

// Service provides the static word list used for membership checks and
// board viability sampling. Words are case-normalized to uppercase and
// anything under 3 letters is dropped at load time, since such words can
// never score.
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	words  []string
	index  map[string]struct{}
	loaded bool
}

// New creates a new dictionary service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
		index:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	s.loadWords(words)
	return nil
}

// LoadFromFile loads dictionary words from a file (one word per line) and
// mirrors them into storage for future restarts
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	s.loadWords(words)
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) {
	s.loadWords(words)
}

func (s *Service) loadWords(raw []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make([]string, 0, len(raw))
	s.index = make(map[string]struct{}, len(raw))
	for _, word := range raw {
		normalized := strings.ToUpper(strings.TrimSpace(word))
		if len(normalized) < 3 {
			continue
		}
		if _, dup := s.index[normalized]; dup {
			continue
		}
		s.words = append(s.words, normalized)
		s.index[normalized] = struct{}{}
	}
	s.loaded = true
}

// IsWord checks membership of an already-normalized word
func (s *Service) IsWord(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}
	_, ok := s.index[strings.ToUpper(word)]
	return ok
}

// Words returns the normalized word list in load order. The slice is
// shared; callers must not mutate it.
func (s *Service) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.words
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string)
	IsWord(word string) bool
	Words() []string
	IsLoaded() bool
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
