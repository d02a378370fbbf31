package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/platform/memstore"
	"github.com/avelar/lexmem/internal/store"
)

func testRecord(expiresAt time.Time) *store.QuizRecord {
	questionID := uuid.New()
	return &store.QuizRecord{
		Session: &domain.QuizSession{
			SessionID: uuid.New(),
			QuizType:  domain.QuizTypeDefinitionMatch,
			Questions: []domain.QuizQuestion{{
				ID:      questionID,
				Word:    "ephemeral",
				Options: []string{"a", "b", "c", "d"},
			}},
			StartedAt: time.Now().UTC(),
		},
		AnswerKey: map[uuid.UUID]int{questionID: 2},
		ExpiresAt: expiresAt,
	}
}

func TestQuizSessionStoreLifecycle(t *testing.T) {
	t.Parallel()
	s := memstore.NewQuizSessionStore()
	ctx := context.Background()
	now := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)

	record := testRecord(now.Add(30 * time.Minute))
	require.NoError(t, s.CreateQuizSession(ctx, record))
	assert.ErrorIs(t, s.CreateQuizSession(ctx, record), store.ErrDuplicate)

	got, err := s.GetQuizSession(ctx, record.Session.SessionID, now)
	require.NoError(t, err)
	assert.Equal(t, record.AnswerKey, got.AnswerKey)

	require.NoError(t, s.DeleteQuizSession(ctx, record.Session.SessionID))
	_, err = s.GetQuizSession(ctx, record.Session.SessionID, now)
	assert.ErrorIs(t, err, store.ErrQuizSessionNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.DeleteQuizSession(ctx, record.Session.SessionID))
}

func TestQuizSessionStoreExpiry(t *testing.T) {
	t.Parallel()
	s := memstore.NewQuizSessionStore()
	ctx := context.Background()
	now := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)

	record := testRecord(now.Add(30 * time.Minute))
	require.NoError(t, s.CreateQuizSession(ctx, record))

	// Within the TTL the record is live.
	_, err := s.GetQuizSession(ctx, record.Session.SessionID, now.Add(29*time.Minute))
	require.NoError(t, err)

	// Past the TTL the record is gone, and reported as expired rather
	// than unknown.
	_, err = s.GetQuizSession(ctx, record.Session.SessionID, now.Add(31*time.Minute))
	assert.ErrorIs(t, err, store.ErrQuizSessionExpired)

	// A second lookup sees it fully dropped.
	_, err = s.GetQuizSession(ctx, record.Session.SessionID, now)
	assert.ErrorIs(t, err, store.ErrQuizSessionNotFound)
}

func TestQuizSessionStoreNoTTL(t *testing.T) {
	t.Parallel()
	s := memstore.NewQuizSessionStore()
	ctx := context.Background()

	record := testRecord(time.Time{})
	require.NoError(t, s.CreateQuizSession(ctx, record))

	_, err := s.GetQuizSession(ctx, record.Session.SessionID, time.Now().Add(1000*time.Hour))
	assert.NoError(t, err)
}
