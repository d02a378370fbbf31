package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/lexmem/internal/api"
	"github.com/avelar/lexmem/internal/config"
	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/domain/srs"
	"github.com/avelar/lexmem/internal/platform/memstore"
	"github.com/avelar/lexmem/internal/service"
	"github.com/avelar/lexmem/internal/store"
)

type serverFixture struct {
	router   http.Handler
	words    *memstore.WordStore
	sessions *memstore.QuizSessionStore
	wordIDs  []uuid.UUID
}

func newServerFixture(t *testing.T, wordCount int) *serverFixture {
	t.Helper()

	words := memstore.NewWordStore(7)
	now := time.Now().UTC()
	var ids []uuid.UUID
	for i := 0; i < wordCount; i++ {
		word := domain.Word{
			ID:         uuid.New(),
			Word:       fmt.Sprintf("word%d", i),
			Definition: fmt.Sprintf("definition %d", i),
			Synonyms:   []string{fmt.Sprintf("synonym%d", i)},
			Antonyms:   []string{fmt.Sprintf("antonym%d", i)},
			Sentence:   fmt.Sprintf("A sentence with word%d inside.", i),
		}
		require.NoError(t, words.AddWord(word, now))
		ids = append(ids, word.ID)
	}

	sessions := memstore.NewQuizSessionStore()
	quizCfg := config.QuizConfig{
		OptionsPerQuestion:    4,
		MaxPointsPerQuestion:  10,
		SpeedRoundTimeSeconds: 60,
		SessionTTLMinutes:     30,
	}

	reviewHandler := api.NewReviewHandler(
		service.NewReviewService(words, srs.NewDefaultService(), nil), nil)
	quizHandler := api.NewQuizHandler(
		service.NewQuizService(words, sessions, quizCfg, nil), nil)

	return &serverFixture{
		router:   api.NewRouter(reviewHandler, quizHandler),
		words:    words,
		sessions: sessions,
		wordIDs:  ids,
	}
}

func (f *serverFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestGetDueReviews(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 3)

	w := f.do(t, http.MethodGet, "/v1/reviews/due", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.DueReviewsResponse](t, w)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Items, 3)
}

func TestGetDueReviewsEmpty(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 0)

	w := f.do(t, http.MethodGet, "/v1/reviews/due", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.DueReviewsResponse](t, w)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Items)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 1)
	quality := 4

	w := f.do(t, http.MethodPost, "/v1/reviews", api.SubmitReviewRequest{
		WordID:  f.wordIDs[0].String(),
		Quality: &quality,
	})
	require.Equal(t, http.StatusOK, w.Code)

	outcome := decodeBody[domain.ReviewOutcome](t, w)
	assert.Equal(t, f.wordIDs[0], outcome.WordID)
	assert.Equal(t, 1, outcome.Repetitions)
	assert.Equal(t, 1, outcome.Interval)

	// The word is no longer due.
	due := decodeBody[api.DueReviewsResponse](t, f.do(t, http.MethodGet, "/v1/reviews/due", nil))
	assert.Equal(t, 0, due.Total)
}

func TestSubmitReviewZeroQualityAccepted(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 1)
	quality := 0

	w := f.do(t, http.MethodPost, "/v1/reviews", api.SubmitReviewRequest{
		WordID:  f.wordIDs[0].String(),
		Quality: &quality,
	})
	require.Equal(t, http.StatusOK, w.Code)

	outcome := decodeBody[domain.ReviewOutcome](t, w)
	assert.Equal(t, 0, outcome.Repetitions)
}

func TestSubmitReviewValidation(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 1)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "missing quality",
			body:       map[string]string{"word_id": f.wordIDs[0].String()},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "quality out of range",
			body:       map[string]interface{}{"word_id": f.wordIDs[0].String(), "quality": 6},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed word id",
			body:       map[string]interface{}{"word_id": "not-a-uuid", "quality": 3},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown word",
			body:       map[string]interface{}{"word_id": uuid.NewString(), "quality": 3},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := f.do(t, http.MethodPost, "/v1/reviews", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGenerateQuiz(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 6)

	w := f.do(t, http.MethodPost, "/v1/quizzes/generate", api.GenerateQuizRequest{
		QuizType:  string(domain.QuizTypeDefinitionMatch),
		WordCount: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	session := decodeBody[domain.QuizSession](t, w)
	assert.NotEqual(t, uuid.Nil, session.SessionID)
	assert.Len(t, session.Questions, 3)
	for _, q := range session.Questions {
		assert.Len(t, q.Options, 4)
	}
}

func TestGenerateQuizErrors(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 2)

	w := f.do(t, http.MethodPost, "/v1/quizzes/generate", api.GenerateQuizRequest{
		QuizType:  "bogus",
		WordCount: 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Too small a catalog for four options per question.
	w = f.do(t, http.MethodPost, "/v1/quizzes/generate", api.GenerateQuizRequest{
		QuizType:  string(domain.QuizTypeDefinitionMatch),
		WordCount: 2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitQuizRoundTrip(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 6)

	generated := f.do(t, http.MethodPost, "/v1/quizzes/generate", api.GenerateQuizRequest{
		QuizType:  string(domain.QuizTypeDefinitionMatch),
		WordCount: 3,
	})
	require.Equal(t, http.StatusCreated, generated.Code)
	session := decodeBody[domain.QuizSession](t, generated)

	// Answer every question with its own word, which is the correct
	// option for a definition-match quiz.
	var answers []api.QuizAnswerPayload
	for _, q := range session.Questions {
		index := -1
		for i, opt := range q.Options {
			if opt == q.Word {
				index = i
			}
		}
		require.GreaterOrEqual(t, index, 0)
		answers = append(answers, api.QuizAnswerPayload{
			QuestionID:    q.ID.String(),
			AnswerIndex:   &index,
			ElapsedMillis: 1500,
		})
	}

	w := f.do(t, http.MethodPost, "/v1/quizzes/submit", api.SubmitQuizRequest{
		SessionID: session.SessionID.String(),
		Answers:   answers,
	})
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeBody[domain.QuizResult](t, w)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, 30, result.MaxScore)
	assert.Equal(t, 3, result.CorrectCount)
	assert.InDelta(t, 1.0, result.Accuracy, 1e-9)

	// A scored session cannot be scored twice.
	w = f.do(t, http.MethodPost, "/v1/quizzes/submit", api.SubmitQuizRequest{
		SessionID: session.SessionID.String(),
		Answers:   answers,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitQuizExpiredSession(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 6)

	questionID := uuid.New()
	record := &store.QuizRecord{
		Session: &domain.QuizSession{
			SessionID: uuid.New(),
			QuizType:  domain.QuizTypeDefinitionMatch,
			Questions: []domain.QuizQuestion{{ID: questionID, Options: []string{"a", "b"}}},
			StartedAt: time.Now().UTC().Add(-2 * time.Hour),
		},
		AnswerKey: map[uuid.UUID]int{questionID: 0},
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, f.sessions.CreateQuizSession(context.Background(), record))

	w := f.do(t, http.MethodPost, "/v1/quizzes/submit", api.SubmitQuizRequest{
		SessionID: record.Session.SessionID.String(),
	})
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestSubmitQuizValidation(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 6)

	w := f.do(t, http.MethodPost, "/v1/quizzes/submit", api.SubmitQuizRequest{
		SessionID: uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/v1/quizzes/submit", map[string]interface{}{
		"session_id": "not-a-uuid",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	f := newServerFixture(t, 0)

	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
