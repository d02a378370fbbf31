// Package memstore provides in-memory implementations of the store
// interfaces. It backs the reference server; everything lives behind
// a mutex and nothing survives a restart.
package memstore

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/store"
)

// WordStore is an in-memory store.WordStore.
type WordStore struct {
	mu     sync.RWMutex
	words  map[uuid.UUID]domain.Word
	states map[uuid.UUID]domain.WordLearningState
	rng    *rand.Rand
}

// Ensure WordStore implements the interface at compile time.
var _ store.WordStore = (*WordStore)(nil)

// NewWordStore creates an empty word store. The seed fixes the sampling
// order used for quiz generation, which keeps tests deterministic.
func NewWordStore(seed int64) *WordStore {
	return &WordStore{
		words:  make(map[uuid.UUID]domain.Word),
		states: make(map[uuid.UUID]domain.WordLearningState),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// AddWord inserts a word and seeds a fresh learning state for it, due
// immediately.
func (s *WordStore) AddWord(word domain.Word, now time.Time) error {
	if word.ID == uuid.Nil {
		return fmt.Errorf("%w: word id is empty", store.ErrInvalidEntity)
	}

	state, err := domain.NewWordLearningState(word.ID, now)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[word.ID]; ok {
		return store.ErrDuplicate
	}
	s.words[word.ID] = word
	s.states[word.ID] = *state
	return nil
}

// GetWord retrieves a word by id.
func (s *WordStore) GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	word, ok := s.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return &word, nil
}

// ListWords returns every word in the catalog.
func (s *WordStore) ListWords(ctx context.Context) ([]domain.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := make([]domain.Word, 0, len(s.words))
	for _, w := range s.words {
		words = append(words, w)
	}
	return words, nil
}

// SampleWords returns up to n distinct words in a shuffled order.
func (s *WordStore) SampleWords(ctx context.Context, n int) ([]domain.Word, error) {
	if n <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	words := make([]domain.Word, 0, len(s.words))
	for _, w := range s.words {
		words = append(words, w)
	}
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	if n < len(words) {
		words = words[:n]
	}
	return words, nil
}

// GetLearningState retrieves the schedule for a word.
func (s *WordStore) GetLearningState(
	ctx context.Context,
	wordID uuid.UUID,
) (*domain.WordLearningState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[wordID]
	if !ok {
		return nil, store.ErrLearningStateNotFound
	}
	return &state, nil
}

// SaveLearningState replaces the schedule for a word.
func (s *WordStore) SaveLearningState(
	ctx context.Context,
	state *domain.WordLearningState,
) error {
	if state == nil {
		return fmt.Errorf("%w: state is nil", store.ErrInvalidEntity)
	}
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[state.WordID]; !ok {
		return store.ErrWordNotFound
	}
	s.states[state.WordID] = *state
	return nil
}

// ListDue returns a review item for every word due at now.
func (s *WordStore) ListDue(ctx context.Context, now time.Time) ([]domain.ReviewItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []domain.ReviewItem
	for id, state := range s.states {
		if !state.IsDue(now) {
			continue
		}
		word := s.words[id]
		item := domain.ReviewItem{
			WordID:         id,
			Word:           word.Word,
			Definition:     word.Definition,
			Mnemonic:       word.Mnemonic,
			Synonyms:       word.Synonyms,
			AudioURL:       word.AudioURL,
			EasinessFactor: state.EasinessFactor,
			Interval:       state.Interval,
			Repetitions:    state.Repetitions,
			NextReviewDate: state.NextReviewDate,
		}
		if state.LastReviewedAt != nil {
			reviewed := *state.LastReviewedAt
			item.LastReviewedAt = &reviewed
		}
		due = append(due, item)
	}
	return due, nil
}
