package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/invalidation"
)

// State names a position in the quiz session state machine.
type State string

// Session states.
const (
	StateSelecting  State = "selecting"
	StateGenerating State = "generating"
	StateInProgress State = "in_progress"
	StateScoring    State = "scoring"
	StateResults    State = "results"
	StateAborted    State = "aborted"
)

// terminal reports whether no further transitions are possible from s.
func (s State) terminal() bool {
	return s == StateResults || s == StateAborted
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the controller's time source. Tests use it to drive
// per-question elapsed times and the session deadline deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller drives one quiz session: it requests generation, presents
// questions in order, records each answer exactly once with its elapsed
// time, and submits the whole answer list in a single batch when the last
// question is answered. The state machine enforces at most one outstanding
// remote call.
//
// Answers are never revised: recording an answer and advancing past its
// question are one atomic transition.
//
// A Controller is ephemeral and exclusively owns its session. It must not
// be reused after Results or Aborted.
type Controller struct {
	generator   QuizGenerator
	scorer      QuizScorer
	invalidator invalidation.Invalidator
	logger      *slog.Logger
	now         func() time.Time

	mu              sync.Mutex
	state           State
	session         *domain.QuizSession
	index           int
	answers         []domain.QuestionAnswer
	questionShownAt time.Time
	deadline        time.Time // zero when the session has no time limit
	scoringInFlight bool
	result          *domain.QuizResult
}

// NewController creates a quiz session controller in the Selecting state.
func NewController(
	generator QuizGenerator,
	scorer QuizScorer,
	invalidator invalidation.Invalidator,
	log *slog.Logger,
	opts ...Option,
) *Controller {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if scorer == nil {
		panic("scorer cannot be nil")
	}
	if invalidator == nil {
		invalidator = invalidation.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Controller{
		generator:   generator,
		scorer:      scorer,
		invalidator: invalidator,
		logger:      log.With(slog.String("component", "quiz_controller")),
		now:         time.Now,
		state:       StateSelecting,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start validates the selection, requests generation, and begins the
// session. A generation failure returns the session to Selecting so the
// user may pick again; an abort during generation discards the response.
func (c *Controller) Start(ctx context.Context, req GenerateRequest) error {
	if !req.QuizType.IsValid() {
		return fmt.Errorf("%w: %w %q", domain.ErrValidation, domain.ErrInvalidQuizType, req.QuizType)
	}
	if req.WordCount <= 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidWordCount)
	}

	c.mu.Lock()
	if c.state != StateSelecting {
		state := c.state
		c.mu.Unlock()
		if state == StateAborted {
			return ErrSessionAborted
		}
		return ErrNotSelecting
	}
	c.state = StateGenerating
	c.mu.Unlock()

	session, err := c.generator.GenerateQuiz(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateAborted {
		return ErrSessionAborted
	}

	if err != nil {
		c.state = StateSelecting
		return fmt.Errorf("failed to generate quiz: %w", err)
	}

	if len(session.Questions) == 0 {
		c.state = StateSelecting
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrNoQuestions)
	}

	now := c.now()
	c.session = session
	c.index = 0
	c.answers = make([]domain.QuestionAnswer, 0, len(session.Questions))
	c.questionShownAt = now
	if session.TimeLimitSeconds > 0 {
		c.deadline = now.Add(time.Duration(session.TimeLimitSeconds) * time.Second)
	}
	c.state = StateInProgress

	c.logger.Debug("quiz session started",
		slog.String("session_id", session.SessionID.String()),
		slog.String("quiz_type", string(session.QuizType)),
		slog.Int("questions", len(session.Questions)),
		slog.Int("time_limit_seconds", session.TimeLimitSeconds))
	return nil
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the live question and its 0-based index.
func (c *Controller) Current() (domain.QuizQuestion, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInProgress {
		return domain.QuizQuestion{}, 0, false
	}
	return c.session.Questions[c.index], c.index, true
}

// Total returns the number of questions in the session.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return 0
	}
	return len(c.session.Questions)
}

// Answer records the chosen option for the live question and advances.
// Answering the last question transitions to Scoring and submits the full
// answer list in one batch.
//
// Once the deadline of a timed session has passed, Answer rejects with
// domain.ErrQuizDeadlineReached and the caller must decide: ForceSubmit the
// partial answers or Abort. The controller never discards a session
// silently.
func (c *Controller) Answer(ctx context.Context, optionIndex int) error {
	c.mu.Lock()
	if c.state != StateInProgress {
		state := c.state
		c.mu.Unlock()
		switch state {
		case StateAborted:
			return ErrSessionAborted
		case StateResults:
			return ErrSessionFinished
		default:
			return ErrNotInProgress
		}
	}

	now := c.now()
	if !c.deadline.IsZero() && now.After(c.deadline) {
		c.mu.Unlock()
		return domain.ErrQuizDeadlineReached
	}

	question := c.session.Questions[c.index]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %w %d", domain.ErrValidation, domain.ErrInvalidAnswerIndex, optionIndex)
	}

	c.answers = append(c.answers, domain.QuestionAnswer{
		QuestionID:    question.ID,
		AnswerIndex:   optionIndex,
		ElapsedMillis: now.Sub(c.questionShownAt).Milliseconds(),
	})

	if c.index+1 < len(c.session.Questions) {
		c.index++
		c.questionShownAt = now
		c.mu.Unlock()
		return nil
	}

	// Last answer recorded: submit the batch.
	return c.submitLocked(ctx)
}

// ForceSubmit submits the answers collected so far as a partial session.
// It is the resolution for an exceeded time limit, and is also valid for an
// early voluntary finish.
func (c *Controller) ForceSubmit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateInProgress:
		return c.submitLocked(ctx)
	case StateScoring:
		return c.submitLocked(ctx)
	default:
		state := c.state
		c.mu.Unlock()
		if state == StateAborted {
			return ErrSessionAborted
		}
		if state == StateResults {
			return ErrSessionFinished
		}
		return ErrNotInProgress
	}
}

// RetrySubmit re-submits the answer list after a scoring failure. Retries
// are always explicit; the controller never re-submits on its own.
func (c *Controller) RetrySubmit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateScoring {
		state := c.state
		c.mu.Unlock()
		if state == StateAborted {
			return ErrSessionAborted
		}
		if state == StateResults {
			return ErrSessionFinished
		}
		return ErrNotScoring
	}
	return c.submitLocked(ctx)
}

// submitLocked performs one batch scoring call. The caller must hold the
// lock; it is released during the remote call and reacquired to apply the
// outcome. Exactly one scoring call may be outstanding.
func (c *Controller) submitLocked(ctx context.Context) error {
	if c.scoringInFlight {
		c.mu.Unlock()
		return ErrScoringInFlight
	}

	c.state = StateScoring
	c.scoringInFlight = true
	sessionID := c.session.SessionID
	answers := make([]domain.QuestionAnswer, len(c.answers))
	copy(answers, c.answers)
	c.mu.Unlock()

	log := c.logger.With(slog.String("session_id", sessionID.String()))
	log.Debug("submitting quiz answers", slog.Int("answers", len(answers)))

	result, err := c.scorer.SubmitQuiz(ctx, sessionID, answers)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scoringInFlight = false

	if c.state == StateAborted {
		log.Debug("discarding scoring response after abort")
		return ErrSessionAborted
	}

	if err != nil {
		// An expired session cannot be retried; everything else stays in
		// Scoring for an explicit retry.
		if errors.Is(err, domain.ErrSessionExpired) {
			c.state = StateAborted
			log.Warn("quiz session expired during scoring")
			return fmt.Errorf("failed to score quiz: %w", err)
		}
		log.Warn("quiz scoring failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to score quiz: %w", err)
	}

	c.result = result
	c.state = StateResults
	log.Debug("quiz session scored",
		slog.Int("score", result.Score),
		slog.Int("max_score", result.MaxScore),
		slog.Float64("accuracy", result.Accuracy))
	c.invalidator.Invalidate(ctx, invalidation.TagQuizzes, invalidation.TagAnalytics)

	return nil
}

// Abort terminates the session. It is safe in every state; aborting a
// finished session is a no-op. The eventual response of any in-flight call
// is discarded.
func (c *Controller) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.terminal() {
		return
	}

	c.state = StateAborted
	c.logger.Debug("quiz session aborted", slog.Int("answers_collected", len(c.answers)))
}

// Result returns the scored outcome once the session reached Results.
func (c *Controller) Result() (*domain.QuizResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateResults {
		return nil, false
	}
	return c.result, true
}

// Answers returns the answers recorded so far, in question order. The
// slice is a copy.
func (c *Controller) Answers() []domain.QuestionAnswer {
	c.mu.Lock()
	defer c.mu.Unlock()

	answers := make([]domain.QuestionAnswer, len(c.answers))
	copy(answers, c.answers)
	return answers
}

// Deadline returns the session deadline and whether one is set.
func (c *Controller) Deadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline, !c.deadline.IsZero()
}
