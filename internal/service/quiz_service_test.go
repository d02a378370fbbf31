package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/lexmem/internal/config"
	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/platform/memstore"
	"github.com/avelar/lexmem/internal/service"
	"github.com/avelar/lexmem/internal/store"
)

func quizConfig() config.QuizConfig {
	return config.QuizConfig{
		OptionsPerQuestion:    4,
		MaxPointsPerQuestion:  10,
		SpeedRoundTimeSeconds: 60,
		SessionTTLMinutes:     30,
	}
}

func quizFixture(t *testing.T) (service.QuizService, *memstore.QuizSessionStore) {
	t.Helper()
	words := seededWordStore(t,
		catalogWord("alpha"), catalogWord("beta"), catalogWord("gamma"),
		catalogWord("delta"), catalogWord("epsilon"), catalogWord("zeta"))
	sessions := memstore.NewQuizSessionStore()
	return service.NewQuizService(words, sessions, quizConfig(), nil), sessions
}

// correctIndex locates the option the scorer will accept. For
// definition-match questions the correct option is the question's own word.
func correctIndex(t *testing.T, q domain.QuizQuestion) int {
	t.Helper()
	for i, opt := range q.Options {
		if opt == q.Word {
			return i
		}
	}
	t.Fatalf("no correct option found for %q in %v", q.Word, q.Options)
	return -1
}

func TestQuizServiceGenerate(t *testing.T) {
	t.Parallel()
	svc, _ := quizFixture(t)

	session, err := svc.GenerateQuiz(context.Background(), service.GenerateQuizParams{
		QuizType:  domain.QuizTypeDefinitionMatch,
		WordCount: 3,
	})
	require.NoError(t, err)
	require.Len(t, session.Questions, 3)
	assert.NotEqual(t, uuid.Nil, session.SessionID)
	assert.Zero(t, session.TimeLimitSeconds)

	for i, q := range session.Questions {
		assert.Equal(t, i+1, q.QuestionNumber)
		assert.Len(t, q.Options, 4)
		assert.Equal(t, 10, q.MaxPoints)
		// Exactly one option is the subject word.
		count := 0
		for _, opt := range q.Options {
			if opt == q.Word {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestQuizServiceGenerateValidation(t *testing.T) {
	t.Parallel()
	svc, _ := quizFixture(t)
	ctx := context.Background()

	_, err := svc.GenerateQuiz(ctx, service.GenerateQuizParams{QuizType: "bogus", WordCount: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidQuizType)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GenerateQuiz(ctx, service.GenerateQuizParams{
		QuizType:  domain.QuizTypeDefinitionMatch,
		WordCount: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWordCount)
}

func TestQuizServiceGenerateNotEnoughWords(t *testing.T) {
	t.Parallel()
	words := seededWordStore(t, catalogWord("alpha"), catalogWord("beta"))
	svc := service.NewQuizService(words, memstore.NewQuizSessionStore(), quizConfig(), nil)

	_, err := svc.GenerateQuiz(context.Background(), service.GenerateQuizParams{
		QuizType:  domain.QuizTypeDefinitionMatch,
		WordCount: 2,
	})
	assert.ErrorIs(t, err, service.ErrNotEnoughWords)
}

func TestQuizServiceSpeedRoundGetsDefaultTimeLimit(t *testing.T) {
	t.Parallel()
	svc, _ := quizFixture(t)

	session, err := svc.GenerateQuiz(context.Background(), service.GenerateQuizParams{
		QuizType:  domain.QuizTypeSpeedRound,
		WordCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, session.TimeLimitSeconds)
}

func TestQuizServiceScoreAllCorrect(t *testing.T) {
	t.Parallel()
	svc, _ := quizFixture(t)
	ctx := context.Background()

	session, err := svc.GenerateQuiz(ctx, service.GenerateQuizParams{
		QuizType:  domain.QuizTypeDefinitionMatch,
		WordCount: 3,
	})
	require.NoError(t, err)

	answers := make([]domain.QuestionAnswer, 0, len(session.Questions))
	for _, q := range session.Questions {
		answers = append(answers, domain.QuestionAnswer{
			QuestionID:  q.ID,
			AnswerIndex: correctIndex(t, q),
		})
	}

	result, err := svc.SubmitQuiz(ctx, session.SessionID, answers)
	require.NoError(t, err)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, 30, result.MaxScore)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 0, result.IncorrectCount)
	assert.InDelta(t, 1.0, result.Accuracy, 1e-9)
	assert.Len(t, result.Results, 3)

	// Sessions are single-use.
	_, err = svc.SubmitQuiz(ctx, session.SessionID, answers)
	assert.ErrorIs(t, err, service.ErrQuizSessionNotFound)
}

func TestQuizServiceScorePartialBatch(t *testing.T) {
	t.Parallel()
	svc, _ := quizFixture(t)
	ctx := context.Background()

	session, err := svc.GenerateQuiz(ctx, service.GenerateQuizParams{
		QuizType:  domain.QuizTypeDefinitionMatch,
		WordCount: 4,
	})
	require.NoError(t, err)
	require.Len(t, session.Questions, 4)

	// Answer only the first question, correctly.
	q := session.Questions[0]
	result, err := svc.SubmitQuiz(ctx, session.SessionID, []domain.QuestionAnswer{
		{QuestionID: q.ID, AnswerIndex: correctIndex(t, q)},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 40, result.MaxScore)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 3, result.IncorrectCount)
	assert.InDelta(t, 0.25, result.Accuracy, 1e-9)

	// Unanswered questions still appear in the detail with the answer
	// revealed.
	require.Len(t, result.Results, 4)
	for _, detail := range result.Results[1:] {
		assert.False(t, detail.IsCorrect)
		assert.Empty(t, detail.UserAnswer)
		assert.NotEmpty(t, detail.CorrectAnswer)
	}
}

func TestQuizServiceScoreValidation(t *testing.T) {
	t.Parallel()
	svc, _ := quizFixture(t)
	ctx := context.Background()

	session, err := svc.GenerateQuiz(ctx, service.GenerateQuizParams{
		QuizType:  domain.QuizTypeDefinitionMatch,
		WordCount: 2,
	})
	require.NoError(t, err)
	q := session.Questions[0]

	_, err = svc.SubmitQuiz(ctx, session.SessionID, []domain.QuestionAnswer{
		{QuestionID: uuid.New(), AnswerIndex: 0},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownQuestionID)

	_, err = svc.SubmitQuiz(ctx, session.SessionID, []domain.QuestionAnswer{
		{QuestionID: q.ID, AnswerIndex: 0},
		{QuestionID: q.ID, AnswerIndex: 1},
	})
	assert.ErrorIs(t, err, domain.ErrQuestionAnswered)

	_, err = svc.SubmitQuiz(ctx, session.SessionID, []domain.QuestionAnswer{
		{QuestionID: q.ID, AnswerIndex: 9},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswerIndex)

	// Validation failures do not consume the session.
	_, err = svc.SubmitQuiz(ctx, session.SessionID, nil)
	assert.NoError(t, err)
}

func TestQuizServiceExpiredSession(t *testing.T) {
	t.Parallel()
	svc, sessions := quizFixture(t)
	ctx := context.Background()

	// Plant a record whose TTL has already elapsed.
	questionID := uuid.New()
	record := &store.QuizRecord{
		Session: &domain.QuizSession{
			SessionID: uuid.New(),
			QuizType:  domain.QuizTypeDefinitionMatch,
			Questions: []domain.QuizQuestion{{ID: questionID, Options: []string{"a", "b"}}},
			StartedAt: time.Now().UTC().Add(-time.Hour),
		},
		AnswerKey: map[uuid.UUID]int{questionID: 0},
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, sessions.CreateQuizSession(ctx, record))

	_, err := svc.SubmitQuiz(ctx, record.Session.SessionID, nil)
	assert.ErrorIs(t, err, service.ErrQuizSessionExpired)

	_, err = svc.SubmitQuiz(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrQuizSessionNotFound)
}

func TestQuizServiceAllTypes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	types := []domain.QuizType{
		domain.QuizTypeDefinitionMatch,
		domain.QuizTypeSynonymMatch,
		domain.QuizTypeAntonymMatch,
		domain.QuizTypeFillInBlank,
		domain.QuizTypeMultipleChoice,
		domain.QuizTypeSpeedRound,
	}
	for _, quizType := range types {
		quizType := quizType
		t.Run(string(quizType), func(t *testing.T) {
			t.Parallel()
			svc, _ := quizFixture(t)

			session, err := svc.GenerateQuiz(ctx, service.GenerateQuizParams{
				QuizType:  quizType,
				WordCount: 3,
			})
			require.NoError(t, err)
			require.NotEmpty(t, session.Questions)
			for _, q := range session.Questions {
				assert.NotEmpty(t, q.QuestionText)
				assert.Len(t, q.Options, 4)
			}
			if quizType == domain.QuizTypeFillInBlank {
				for _, q := range session.Questions {
					assert.Contains(t, q.QuestionText, "_____")
				}
			}
		})
	}
}
