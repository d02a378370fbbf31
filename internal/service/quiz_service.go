package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/config"
	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/platform/logger"
	"github.com/avelar/lexmem/internal/store"
)

// Common error types for QuizService.
var (
	// ErrNotEnoughWords indicates the catalog cannot fill a question's
	// option list for the requested quiz type.
	ErrNotEnoughWords = errors.New("not enough words to generate quiz")

	// ErrQuizSessionNotFound indicates an unknown quiz session id.
	ErrQuizSessionNotFound = errors.New("quiz session not found")

	// ErrQuizSessionExpired indicates the session's TTL elapsed before
	// submission.
	ErrQuizSessionExpired = errors.New("quiz session expired")
)

// GenerateQuizParams describes one quiz generation request.
type GenerateQuizParams struct {
	QuizType         domain.QuizType
	WordCount        int
	TimeLimitSeconds int // 0 means untimed (speed rounds get a default)
}

// QuizService generates quiz sessions from the word catalog and scores
// submitted answer batches.
type QuizService interface {
	// GenerateQuiz builds a question set of the requested type and stores
	// the session with its answer key.
	// Returns ErrNotEnoughWords when the catalog cannot supply enough
	// material and a domain validation error for a bad type or count.
	GenerateQuiz(ctx context.Context, params GenerateQuizParams) (*domain.QuizSession, error)

	// SubmitQuiz scores an answer batch against the stored answer key and
	// retires the session.
	// Returns ErrQuizSessionNotFound or ErrQuizSessionExpired when the
	// session cannot be scored.
	SubmitQuiz(
		ctx context.Context,
		sessionID uuid.UUID,
		answers []domain.QuestionAnswer,
	) (*domain.QuizResult, error)
}

var _ QuizService = (*quizServiceImpl)(nil)

type quizServiceImpl struct {
	words    store.WordStore
	sessions store.QuizSessionStore
	cfg      config.QuizConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewQuizService creates a QuizService backed by the given stores.
func NewQuizService(
	words store.WordStore,
	sessions store.QuizSessionStore,
	cfg config.QuizConfig,
	log *slog.Logger,
) QuizService {
	if words == nil {
		panic("words cannot be nil")
	}
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &quizServiceImpl{
		words:    words,
		sessions: sessions,
		cfg:      cfg,
		logger:   log.With(slog.String("component", "quiz_service")),
		now:      time.Now,
	}
}

func (s *quizServiceImpl) GenerateQuiz(
	ctx context.Context,
	params GenerateQuizParams,
) (*domain.QuizSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !params.QuizType.IsValid() {
		return nil, fmt.Errorf("%w: %w %q", domain.ErrValidation, domain.ErrInvalidQuizType, params.QuizType)
	}
	if params.WordCount <= 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidWordCount)
	}

	subjects, err := s.words.SampleWords(ctx, params.WordCount)
	if err != nil {
		return nil, fmt.Errorf("failed to sample words: %w", err)
	}
	pool, err := s.words.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	if len(pool) < s.cfg.OptionsPerQuestion {
		return nil, ErrNotEnoughWords
	}

	now := s.now().UTC()
	session := &domain.QuizSession{
		SessionID:        uuid.New(),
		QuizType:         params.QuizType,
		TimeLimitSeconds: params.TimeLimitSeconds,
		StartedAt:        now,
	}
	if params.QuizType == domain.QuizTypeSpeedRound && session.TimeLimitSeconds == 0 {
		session.TimeLimitSeconds = s.cfg.SpeedRoundTimeSeconds
	}

	answerKey := make(map[uuid.UUID]int)
	for _, word := range subjects {
		question, correct, ok := s.buildQuestion(params.QuizType, word, pool)
		if !ok {
			// The word lacks the material this quiz type needs.
			continue
		}
		question.QuestionNumber = len(session.Questions) + 1
		session.Questions = append(session.Questions, question)
		answerKey[question.ID] = correct
	}
	if len(session.Questions) == 0 {
		return nil, ErrNotEnoughWords
	}

	record := &store.QuizRecord{
		Session:   session,
		AnswerKey: answerKey,
		ExpiresAt: now.Add(time.Duration(s.cfg.SessionTTLMinutes) * time.Minute),
	}
	if err := s.sessions.CreateQuizSession(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store quiz session: %w", err)
	}

	log.Debug("quiz generated",
		slog.String("session_id", session.SessionID.String()),
		slog.String("quiz_type", string(params.QuizType)),
		slog.Int("questions", len(session.Questions)))
	return session, nil
}

// buildQuestion assembles one question for the word, drawing distractors
// from the rest of the pool. Reports false when the word lacks the
// content the quiz type requires.
func (s *quizServiceImpl) buildQuestion(
	quizType domain.QuizType,
	word domain.Word,
	pool []domain.Word,
) (domain.QuizQuestion, int, bool) {
	var prompt, correct string
	var distractors []string

	switch quizType {
	case domain.QuizTypeDefinitionMatch:
		if word.Definition == "" {
			return domain.QuizQuestion{}, 0, false
		}
		prompt = fmt.Sprintf("Which word means: %s?", word.Definition)
		correct = word.Word
		distractors = otherWords(pool, word.ID, func(w domain.Word) (string, bool) {
			return w.Word, true
		})

	case domain.QuizTypeSynonymMatch:
		if len(word.Synonyms) == 0 {
			return domain.QuizQuestion{}, 0, false
		}
		prompt = fmt.Sprintf("Which word is a synonym of %q?", word.Word)
		correct = word.Synonyms[0]
		distractors = otherWords(pool, word.ID, func(w domain.Word) (string, bool) {
			if len(w.Synonyms) == 0 {
				return "", false
			}
			return w.Synonyms[0], true
		})

	case domain.QuizTypeAntonymMatch:
		if len(word.Antonyms) == 0 {
			return domain.QuizQuestion{}, 0, false
		}
		prompt = fmt.Sprintf("Which word is an antonym of %q?", word.Word)
		correct = word.Antonyms[0]
		distractors = otherWords(pool, word.ID, func(w domain.Word) (string, bool) {
			if len(w.Antonyms) == 0 {
				return "", false
			}
			return w.Antonyms[0], true
		})

	case domain.QuizTypeFillInBlank:
		if word.Sentence == "" || !strings.Contains(strings.ToLower(word.Sentence), strings.ToLower(word.Word)) {
			return domain.QuizQuestion{}, 0, false
		}
		prompt = blankOut(word.Sentence, word.Word)
		correct = word.Word
		distractors = otherWords(pool, word.ID, func(w domain.Word) (string, bool) {
			return w.Word, true
		})

	case domain.QuizTypeMultipleChoice, domain.QuizTypeSpeedRound:
		if word.Definition == "" {
			return domain.QuizQuestion{}, 0, false
		}
		prompt = fmt.Sprintf("What does %q mean?", word.Word)
		correct = word.Definition
		distractors = otherWords(pool, word.ID, func(w domain.Word) (string, bool) {
			if w.Definition == "" {
				return "", false
			}
			return w.Definition, true
		})

	default:
		return domain.QuizQuestion{}, 0, false
	}

	options, correctIndex, ok := assembleOptions(correct, distractors, s.cfg.OptionsPerQuestion)
	if !ok {
		return domain.QuizQuestion{}, 0, false
	}

	return domain.QuizQuestion{
		ID:           uuid.New(),
		Word:         word.Word,
		QuestionText: prompt,
		Options:      options,
		MaxPoints:    s.cfg.MaxPointsPerQuestion,
	}, correctIndex, true
}

// otherWords extracts distractor candidates from every pool word except
// the subject, deduplicated.
func otherWords(
	pool []domain.Word,
	exclude uuid.UUID,
	pick func(domain.Word) (string, bool),
) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range pool {
		if w.ID == exclude {
			continue
		}
		candidate, ok := pick(w)
		if !ok || candidate == "" || seen[candidate] {
			continue
		}
		seen[candidate] = true
		out = append(out, candidate)
	}
	return out
}

// assembleOptions shuffles the distractors, takes enough to fill the
// option list, and inserts the correct value at a random position.
func assembleOptions(correct string, distractors []string, size int) ([]string, int, bool) {
	filtered := make([]string, 0, len(distractors))
	for _, d := range distractors {
		if d != correct {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) < size-1 {
		return nil, 0, false
	}

	rand.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	options := make([]string, 0, size)
	options = append(options, filtered[:size-1]...)
	correctIndex := rand.Intn(size)
	options = append(options, "")
	copy(options[correctIndex+1:], options[correctIndex:])
	options[correctIndex] = correct
	return options, correctIndex, true
}

// blankOut replaces the first occurrence of the word in the sentence,
// case-insensitively, with a blank.
func blankOut(sentence, word string) string {
	lower := strings.ToLower(sentence)
	idx := strings.Index(lower, strings.ToLower(word))
	if idx < 0 {
		return sentence
	}
	return sentence[:idx] + "_____" + sentence[idx+len(word):]
}

func (s *quizServiceImpl) SubmitQuiz(
	ctx context.Context,
	sessionID uuid.UUID,
	answers []domain.QuestionAnswer,
) (*domain.QuizResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now().UTC()
	record, err := s.sessions.GetQuizSession(ctx, sessionID, now)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrQuizSessionExpired):
			log.Warn("quiz session expired", slog.String("session_id", sessionID.String()))
			return nil, ErrQuizSessionExpired
		case store.IsNotFoundError(err):
			return nil, ErrQuizSessionNotFound
		default:
			return nil, fmt.Errorf("failed to load quiz session: %w", err)
		}
	}

	byID := make(map[uuid.UUID]domain.QuizQuestion, len(record.Session.Questions))
	for _, q := range record.Session.Questions {
		byID[q.ID] = q
	}

	answered := make(map[uuid.UUID]domain.QuestionAnswer, len(answers))
	for _, a := range answers {
		question, ok := byID[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: %w %s", domain.ErrValidation, domain.ErrUnknownQuestionID, a.QuestionID)
		}
		if _, dup := answered[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: %w %s", domain.ErrValidation, domain.ErrQuestionAnswered, a.QuestionID)
		}
		if a.AnswerIndex < 0 || a.AnswerIndex >= len(question.Options) {
			return nil, fmt.Errorf("%w: %w %d", domain.ErrValidation, domain.ErrInvalidAnswerIndex, a.AnswerIndex)
		}
		answered[a.QuestionID] = a
	}

	result := &domain.QuizResult{
		SessionID:      sessionID,
		ElapsedSeconds: int(now.Sub(record.Session.StartedAt).Seconds()),
	}
	for _, q := range record.Session.Questions {
		correctIndex := record.AnswerKey[q.ID]
		detail := domain.QuestionResult{
			QuestionID:    q.ID,
			Word:          q.Word,
			CorrectAnswer: q.Options[correctIndex],
		}

		result.MaxScore += q.MaxPoints
		if a, ok := answered[q.ID]; ok {
			detail.UserAnswer = q.Options[a.AnswerIndex]
			detail.IsCorrect = a.AnswerIndex == correctIndex
		}
		if detail.IsCorrect {
			detail.PointsEarned = q.MaxPoints
			result.Score += q.MaxPoints
			result.CorrectCount++
		} else {
			result.IncorrectCount++
		}
		result.Results = append(result.Results, detail)
	}
	if total := len(record.Session.Questions); total > 0 {
		result.Accuracy = float64(result.CorrectCount) / float64(total)
	}

	// The session is single-use; scoring retires it.
	if err := s.sessions.DeleteQuizSession(ctx, sessionID); err != nil {
		log.Warn("failed to delete scored quiz session",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
	}

	log.Debug("quiz scored",
		slog.String("session_id", sessionID.String()),
		slog.Int("score", result.Score),
		slog.Int("correct", result.CorrectCount))
	return result, nil
}
