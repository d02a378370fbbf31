// Package review implements the flashcard review session: the ordered queue
// of due words and the controller that drives one session through it.
//
// The scheduling arithmetic itself executes on the remote collaborator
// behind ReviewSubmitter; its response is the sole truth for a word's new
// schedule. The local srs engine is the reference oracle, not a second
// writer, so there is no reconciliation problem.
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
)

// DueReviewSource fetches the set of words due for review. The set is
// unordered; the queue imposes the presentation order.
type DueReviewSource interface {
	// GetDueReviews returns the due items and the total count.
	GetDueReviews(ctx context.Context) ([]domain.ReviewItem, int, error)
}

// ReviewSubmitter records one quality rating with the remote scheduler and
// returns the authoritative schedule change. Failures wrap one of the
// domain taxonomy sentinels (ErrValidation, ErrTransient, ErrConflict).
type ReviewSubmitter interface {
	SubmitReview(
		ctx context.Context,
		wordID uuid.UUID,
		quality domain.Quality,
	) (*domain.ReviewOutcome, error)
}

// Session state machine errors.
var (
	// ErrAlreadyStarted indicates Start was called on a session that has
	// left the Idle state.
	ErrAlreadyStarted = errors.New("review session already started")

	// ErrNotPresenting indicates Reveal was called outside the Presenting
	// state.
	ErrNotPresenting = errors.New("no question is being presented")

	// ErrNotRevealed indicates a rating was submitted before the answer
	// was revealed.
	ErrNotRevealed = errors.New("answer has not been revealed")

	// ErrSubmissionInFlight indicates a rating was submitted while the
	// previous submission for the same item was still outstanding. The
	// request is rejected, not queued.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrSessionAborted indicates the session was aborted; the result of
	// any in-flight call has been discarded.
	ErrSessionAborted = errors.New("review session aborted")

	// ErrSessionCompleted indicates the session has already finished.
	ErrSessionCompleted = errors.New("review session completed")
)
