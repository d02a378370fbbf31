package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/invalidation"
)

// State names a position in the review session state machine.
type State string

// Session states. Advancement after a successful submission is synchronous,
// so the machine moves from Submitting straight to Presenting or Completed.
const (
	StateIdle       State = "idle"
	StatePresenting State = "presenting"
	StateRevealed   State = "revealed"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateAborted    State = "aborted"
)

// terminal reports whether no further transitions are possible from s.
func (s State) terminal() bool {
	return s == StateCompleted || s == StateAborted
}

// Controller drives one review session: it presents due items in queue
// order, collects quality ratings, submits each rating to the remote
// scheduler, and tracks progress. The state machine is the mutual-exclusion
// mechanism: at most one submission is outstanding per session, and a
// submit while one is in flight is rejected rather than queued.
//
// A Controller is ephemeral and exclusively owns its session. It must not
// be reused after Completed or Aborted.
type Controller struct {
	source      DueReviewSource
	submitter   ReviewSubmitter
	invalidator invalidation.Invalidator
	logger      *slog.Logger

	mu        sync.Mutex
	state     State
	starting  bool
	items     []domain.ReviewItem
	index     int
	completed int
	outcomes  []domain.ReviewOutcome
}

// NewController creates a review session controller in the Idle state.
func NewController(
	source DueReviewSource,
	submitter ReviewSubmitter,
	invalidator invalidation.Invalidator,
	log *slog.Logger,
) *Controller {
	if source == nil {
		panic("source cannot be nil")
	}
	if submitter == nil {
		panic("submitter cannot be nil")
	}
	if invalidator == nil {
		invalidator = invalidation.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		source:      source,
		submitter:   submitter,
		invalidator: invalidator,
		logger:      log.With(slog.String("component", "review_controller")),
		state:       StateIdle,
	}
}

// Start fetches the due set and begins the session. An empty due set is a
// valid success: the session completes immediately with zero items. A fetch
// failure leaves the session Idle so the caller may call Start again.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle || c.starting {
		state := c.state
		c.mu.Unlock()
		if state == StateAborted {
			return ErrSessionAborted
		}
		return ErrAlreadyStarted
	}
	c.starting = true
	c.mu.Unlock()

	items, total, err := c.source.GetDueReviews(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false

	if err != nil {
		return fmt.Errorf("failed to fetch due reviews: %w", err)
	}

	// The session may have been aborted while the fetch was outstanding.
	if c.state == StateAborted {
		return ErrSessionAborted
	}

	c.items = OrderQueue(items)
	c.index = 0

	if len(c.items) == 0 {
		c.state = StateCompleted
		c.logger.Debug("no due reviews, session completed immediately")
		return nil
	}

	c.state = StatePresenting
	c.logger.Debug("review session started",
		slog.Int("due_items", len(c.items)),
		slog.Int("total_reported", total))
	return nil
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the item being presented or revealed, if any.
func (c *Controller) Current() (domain.ReviewItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePresenting, StateRevealed, StateSubmitting:
		return c.items[c.index], true
	default:
		return domain.ReviewItem{}, false
	}
}

// Progress reports how many items have been completed and the session total.
func (c *Controller) Progress() (completed, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed, len(c.items)
}

// Reveal shows the answer for the current item. No network call is made.
func (c *Controller) Reveal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePresenting {
		return fmt.Errorf("%w (state %s)", ErrNotPresenting, c.state)
	}

	c.state = StateRevealed
	return nil
}

// SubmitRating records a quality rating for the current item with the
// remote scheduler and, on success, advances to the next item or completes
// the session.
//
// Failure semantics follow the submission taxonomy: on any submitter error
// the session returns to Revealed with the same item current and nothing
// recorded, and the caller decides whether to retry. There is no automatic
// retry. A rating submitted while another is outstanding is rejected with
// ErrSubmissionInFlight.
func (c *Controller) SubmitRating(
	ctx context.Context,
	quality domain.Quality,
) (*domain.ReviewOutcome, error) {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case StateRevealed:
		// proceed
	default:
		state := c.state
		c.mu.Unlock()
		if state == StateAborted {
			return nil, ErrSessionAborted
		}
		if state == StateCompleted {
			return nil, ErrSessionCompleted
		}
		return nil, fmt.Errorf("%w (state %s)", ErrNotRevealed, state)
	}

	if !quality.IsValid() {
		// Validation failures never leave the Revealed state.
		c.mu.Unlock()
		return nil, domain.ErrInvalidQuality
	}

	item := c.items[c.index]
	c.state = StateSubmitting
	c.mu.Unlock()

	log := c.logger.With(
		slog.String("word_id", item.WordID.String()),
		slog.Int("quality", int(quality)))
	log.Debug("submitting review rating")

	outcome, err := c.submitter.SubmitReview(ctx, item.WordID, quality)

	c.mu.Lock()
	defer c.mu.Unlock()

	// An abort while the call was outstanding wins; the response is
	// discarded and no session state is mutated.
	if c.state == StateAborted {
		log.Debug("discarding submission response after abort")
		return nil, ErrSessionAborted
	}

	if err != nil {
		c.state = StateRevealed
		log.Warn("review submission failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	c.outcomes = append(c.outcomes, *outcome)
	c.completed++

	if c.index+1 < len(c.items) {
		c.index++
		c.state = StatePresenting
	} else {
		c.state = StateCompleted
		log.Debug("review session completed", slog.Int("items", c.completed))
		c.invalidator.Invalidate(ctx, invalidation.TagReviews, invalidation.TagAnalytics)
	}

	return outcome, nil
}

// Abort terminates the session. It is safe in every state; aborting a
// finished session is a no-op. The eventual response of any in-flight
// submission is discarded.
func (c *Controller) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.terminal() {
		return
	}

	c.state = StateAborted
	c.logger.Debug("review session aborted",
		slog.Int("completed", c.completed),
		slog.Int("total", len(c.items)))
}

// Outcomes returns the schedule changes recorded so far, in completion
// order. The slice is a copy.
func (c *Controller) Outcomes() []domain.ReviewOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcomes := make([]domain.ReviewOutcome, len(c.outcomes))
	copy(outcomes, c.outcomes)
	return outcomes
}
