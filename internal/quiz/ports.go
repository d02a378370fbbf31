// Package quiz implements the timed multiple-choice quiz session: the
// controller that collects answers for a generated question list, submits
// them in one batch, and holds the scored result.
//
// Generation and scoring execute on the remote collaborator behind the
// QuizGenerator and QuizScorer ports; the controller never sees a correct
// answer before the result comes back.
package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
)

// GenerateRequest describes the quiz the user picked.
type GenerateRequest struct {
	QuizType         domain.QuizType
	WordCount        int
	TimeLimitSeconds int // 0 lets the generator decide (speed rounds get a default)
}

// QuizGenerator creates a quiz session from the user's word bank. The
// returned question list is ordered and immutable.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req GenerateRequest) (*domain.QuizSession, error)
}

// QuizScorer scores a full answer list in one batch, identified by the
// session id. Failures wrap one of the domain taxonomy sentinels
// (ErrValidation, ErrTransient, ErrConflict, ErrSessionExpired).
type QuizScorer interface {
	SubmitQuiz(
		ctx context.Context,
		sessionID uuid.UUID,
		answers []domain.QuestionAnswer,
	) (*domain.QuizResult, error)
}

// Session state machine errors.
var (
	// ErrNotSelecting indicates Start was called on a session that has
	// already been started.
	ErrNotSelecting = errors.New("quiz session already started")

	// ErrNotInProgress indicates an answer was given while no question was
	// live.
	ErrNotInProgress = errors.New("quiz session is not in progress")

	// ErrNotScoring indicates a submit retry outside the Scoring state.
	ErrNotScoring = errors.New("quiz session is not awaiting scoring")

	// ErrScoringInFlight indicates a submission was requested while the
	// previous one was still outstanding. The request is rejected, not
	// queued.
	ErrScoringInFlight = errors.New("a scoring request is already in flight")

	// ErrSessionAborted indicates the session was aborted; the result of
	// any in-flight call has been discarded.
	ErrSessionAborted = errors.New("quiz session aborted")

	// ErrSessionFinished indicates the session already has its results.
	ErrSessionFinished = errors.New("quiz session finished")
)
