package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/store"
)

// QuizSessionStore is an in-memory store.QuizSessionStore. Expired
// records are dropped lazily on access.
type QuizSessionStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*store.QuizRecord
}

var _ store.QuizSessionStore = (*QuizSessionStore)(nil)

// NewQuizSessionStore creates an empty quiz session store.
func NewQuizSessionStore() *QuizSessionStore {
	return &QuizSessionStore{
		records: make(map[uuid.UUID]*store.QuizRecord),
	}
}

// CreateQuizSession stores a newly generated session.
func (s *QuizSessionStore) CreateQuizSession(ctx context.Context, record *store.QuizRecord) error {
	if record == nil || record.Session == nil {
		return fmt.Errorf("%w: record is nil", store.ErrInvalidEntity)
	}
	if record.Session.SessionID == uuid.Nil {
		return fmt.Errorf("%w: session id is empty", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.Session.SessionID
	if _, ok := s.records[id]; ok {
		return store.ErrDuplicate
	}
	s.records[id] = record
	return nil
}

// GetQuizSession retrieves a live session, distinguishing unknown ids
// from expired ones.
func (s *QuizSessionStore) GetQuizSession(
	ctx context.Context,
	id uuid.UUID,
	now time.Time,
) (*store.QuizRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return nil, store.ErrQuizSessionNotFound
	}
	if !record.ExpiresAt.IsZero() && now.After(record.ExpiresAt) {
		delete(s.records, id)
		return nil, store.ErrQuizSessionExpired
	}
	return record, nil
}

// DeleteQuizSession removes a session. Absent ids are a no-op.
func (s *QuizSessionStore) DeleteQuizSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}
