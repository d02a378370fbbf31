package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// QuizType selects how questions are generated for a quiz session.
type QuizType string

// Supported quiz types.
const (
	QuizTypeDefinitionMatch QuizType = "definition_match"
	QuizTypeSynonymMatch    QuizType = "synonym_match"
	QuizTypeAntonymMatch    QuizType = "antonym_match"
	QuizTypeFillInBlank     QuizType = "fill_in_blank"
	QuizTypeMultipleChoice  QuizType = "multiple_choice"
	QuizTypeSpeedRound      QuizType = "speed_round"
)

// IsValid reports whether t is one of the supported quiz types.
func (t QuizType) IsValid() bool {
	switch t {
	case QuizTypeDefinitionMatch, QuizTypeSynonymMatch, QuizTypeAntonymMatch,
		QuizTypeFillInBlank, QuizTypeMultipleChoice, QuizTypeSpeedRound:
		return true
	default:
		return false
	}
}

// Quiz validation errors.
var (
	ErrInvalidQuizType     = errors.New("unknown quiz type")
	ErrInvalidWordCount    = errors.New("word count must be greater than 0")
	ErrInvalidAnswerIndex  = errors.New("answer index is out of range")
	ErrQuestionAnswered    = errors.New("question has already been answered")
	ErrUnknownQuestionID   = errors.New("question id does not belong to this session")
	ErrNoQuestions         = errors.New("quiz session has no questions")
	ErrQuizDeadlineReached = errors.New("quiz time limit exceeded")
)

// QuizQuestion is a single multiple-choice question. Immutable once issued
// by the generator.
type QuizQuestion struct {
	ID             uuid.UUID `json:"id"`
	QuestionNumber int       `json:"question_number"` // 1-based position in the session
	Word           string    `json:"word"`
	QuestionText   string    `json:"question_text"`
	Options        []string  `json:"options"`
	MaxPoints      int       `json:"max_points"`
}

// QuizSession is a generated quiz identified by an opaque session id issued
// by the remote generator. The question list is ordered and immutable.
type QuizSession struct {
	SessionID        uuid.UUID      `json:"session_id"`
	QuizType         QuizType       `json:"quiz_type"`
	Questions        []QuizQuestion `json:"questions"`
	TimeLimitSeconds int            `json:"time_limit_seconds,omitempty"` // 0 means no limit
	StartedAt        time.Time      `json:"started_at"`
}

// QuestionAnswer records the chosen option for one question and how long the
// user took to choose it. Answers are appended in question order and never
// revised once the session has advanced past the question.
type QuestionAnswer struct {
	QuestionID    uuid.UUID `json:"question_id"`
	AnswerIndex   int       `json:"answer_index"`
	ElapsedMillis int64     `json:"time_taken_ms,omitempty"`
}

// QuestionResult is the per-question correctness detail of a scored session.
type QuestionResult struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Word          string    `json:"word"`
	CorrectAnswer string    `json:"correct_answer"`
	UserAnswer    string    `json:"user_answer"`
	IsCorrect     bool      `json:"is_correct"`
	PointsEarned  int       `json:"points_earned"`
}

// QuizResult is the scored outcome of a quiz session as reported by the
// remote scoring collaborator.
type QuizResult struct {
	SessionID      uuid.UUID        `json:"session_id"`
	Score          int              `json:"score"`
	MaxScore       int              `json:"max_score"`
	CorrectCount   int              `json:"correct_count"`
	IncorrectCount int              `json:"incorrect_count"`
	Accuracy       float64          `json:"accuracy"` // correctCount / totalQuestions
	ElapsedSeconds int              `json:"time_taken_seconds"`
	Results        []QuestionResult `json:"results"`
}
