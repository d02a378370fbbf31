package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
)

// WordStore defines the interface for vocabulary and learning-state
// persistence.
type WordStore interface {
	// GetWord retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// ListWords returns every word in the catalog. Order is unspecified.
	ListWords(ctx context.Context) ([]domain.Word, error)

	// SampleWords returns up to n distinct words drawn from the catalog for
	// quiz generation. Fewer than n are returned when the catalog is small.
	SampleWords(ctx context.Context, n int) ([]domain.Word, error)

	// GetLearningState retrieves the learning state for a word.
	// Returns ErrLearningStateNotFound if the word has never been reviewed
	// and no initial state was seeded.
	GetLearningState(ctx context.Context, wordID uuid.UUID) (*domain.WordLearningState, error)

	// SaveLearningState stores the updated learning state for a word,
	// replacing any previous state. The state must satisfy domain
	// validation; failures are reported as ErrInvalidEntity.
	SaveLearningState(ctx context.Context, state *domain.WordLearningState) error

	// ListDue returns the review items due at now, one per word whose
	// learning state has NextReviewDate <= now.
	ListDue(ctx context.Context, now time.Time) ([]domain.ReviewItem, error)
}

// QuizRecord is the server-side view of an issued quiz session: the
// question set handed to the client plus the answer key, which never
// leaves the server.
type QuizRecord struct {
	Session   *domain.QuizSession
	AnswerKey map[uuid.UUID]int // question id -> correct option index
	ExpiresAt time.Time
}

// QuizSessionStore defines the interface for in-flight quiz session
// persistence. Sessions are short-lived and carry a TTL.
type QuizSessionStore interface {
	// CreateQuizSession stores a newly generated session.
	// Returns ErrDuplicate if the session id is already present.
	CreateQuizSession(ctx context.Context, record *QuizRecord) error

	// GetQuizSession retrieves a session by id.
	// Returns ErrQuizSessionNotFound for an unknown id and
	// ErrQuizSessionExpired when the record's TTL has elapsed at now.
	GetQuizSession(ctx context.Context, id uuid.UUID, now time.Time) (*QuizRecord, error)

	// DeleteQuizSession removes a session, typically after scoring.
	// Deleting an absent session is not an error.
	DeleteQuizSession(ctx context.Context, id uuid.UUID) error
}
