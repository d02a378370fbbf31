// Package invalidation carries stale-data notifications from finished
// sessions to the caches that show due counts and analytics. The core only
// signals which tags went stale; refreshing is the collaborators' job.
//
// The invalidator is an explicitly passed capability, never a process-wide
// singleton, so tests and independent sessions can each wire their own.
package invalidation

import (
	"context"
	"log/slog"
	"sync"
)

// Tag identifies a cached data family that a finished session makes stale.
type Tag string

// Tags invalidated by the session controllers.
const (
	TagReviews   Tag = "reviews"
	TagAnalytics Tag = "analytics"
	TagQuizzes   Tag = "quizzes"
)

// Invalidator receives stale-data tags. Implementations must be safe for
// concurrent use; sessions fire notifications without coordination.
type Invalidator interface {
	// Invalidate marks the given tags stale. It never blocks on the
	// refresh itself.
	Invalidate(ctx context.Context, tags ...Tag)
}

// Handler processes a single stale tag.
type Handler func(ctx context.Context, tag Tag)

// Emitter is an in-memory Invalidator that fans each tag out to registered
// handlers.
type Emitter struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *slog.Logger
}

// Verify interface compliance at compile time
var _ Invalidator = (*Emitter)(nil)

// NewEmitter creates an Emitter.
func NewEmitter(log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{
		logger: log.With(slog.String("component", "invalidation_emitter")),
	}
}

// RegisterHandler adds a handler that will receive every future tag.
func (e *Emitter) RegisterHandler(h Handler) {
	if h == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, h)
	e.logger.Debug("registered stale-data handler", "handler_count", len(e.handlers))
}

// Invalidate implements Invalidator.
func (e *Emitter) Invalidate(ctx context.Context, tags ...Tag) {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	for _, tag := range tags {
		e.logger.Debug("invalidating stale-data tag",
			"tag", string(tag),
			"handler_count", len(handlers))
		for _, h := range handlers {
			h(ctx, tag)
		}
	}
}

// Nop is an Invalidator that discards all tags. Useful as a default and in
// tests that do not care about cache signals.
type Nop struct{}

// Verify interface compliance at compile time
var _ Invalidator = Nop{}

// Invalidate implements Invalidator.
func (Nop) Invalidate(context.Context, ...Tag) {}
