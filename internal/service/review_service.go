package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/domain/srs"
	"github.com/avelar/lexmem/internal/platform/logger"
	"github.com/avelar/lexmem/internal/review"
	"github.com/avelar/lexmem/internal/store"
)

// Common error types for ReviewService.
var (
	// ErrWordNotFound indicates that the reviewed word does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrInvalidQuality indicates a rating outside the 0-5 domain.
	ErrInvalidQuality = errors.New("invalid quality rating")
)

// ReviewService provides the server-side review operations: listing the
// due set and recording a submitted rating through the scheduling engine.
type ReviewService interface {
	// GetDueReviews returns every item due at the current time in queue
	// order: oldest due date first, ties broken by ascending repetitions,
	// then by word ID.
	GetDueReviews(ctx context.Context) ([]domain.ReviewItem, error)

	// SubmitReview applies a quality rating to a word's learning state and
	// persists the result.
	// Returns ErrWordNotFound if the word has no learning state and
	// ErrInvalidQuality for a rating outside 0-5.
	SubmitReview(
		ctx context.Context,
		wordID uuid.UUID,
		quality domain.Quality,
	) (*domain.ReviewOutcome, error)
}

var _ ReviewService = (*reviewServiceImpl)(nil)

type reviewServiceImpl struct {
	words      store.WordStore
	srsService srs.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewReviewService creates a ReviewService backed by the given store and
// scheduling engine.
func NewReviewService(
	words store.WordStore,
	srsService srs.Service,
	log *slog.Logger,
) ReviewService {
	if words == nil {
		panic("words cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		words:      words,
		srsService: srsService,
		logger:     log.With(slog.String("component", "review_service")),
		now:        time.Now,
	}
}

func (s *reviewServiceImpl) GetDueReviews(ctx context.Context) ([]domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now().UTC()
	items, err := s.words.ListDue(ctx, now)
	if err != nil {
		log.Error("failed to list due reviews", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list due reviews: %w", err)
	}

	items = review.OrderQueue(items)

	log.Debug("listed due reviews", slog.Int("count", len(items)))
	return items, nil
}

func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	wordID uuid.UUID,
	quality domain.Quality,
) (*domain.ReviewOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !quality.IsValid() {
		log.Warn("invalid quality rating",
			slog.String("word_id", wordID.String()),
			slog.Int("quality", int(quality)))
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	prior, err := s.words.GetLearningState(ctx, wordID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("word not found for review", slog.String("word_id", wordID.String()))
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get learning state: %w", err)
	}

	now := s.now().UTC()
	next, err := s.srsService.NextState(prior, quality, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next state: %w", err)
	}

	if err := s.words.SaveLearningState(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save learning state: %w", err)
	}

	log.Debug("review recorded",
		slog.String("word_id", wordID.String()),
		slog.Int("quality", int(quality)),
		slog.Int("interval", next.Interval),
		slog.Int("repetitions", next.Repetitions))

	return &domain.ReviewOutcome{
		WordID:         wordID,
		Quality:        quality,
		NextReviewDate: next.NextReviewDate,
		EasinessFactor: next.EasinessFactor,
		Interval:       next.Interval,
		Repetitions:    next.Repetitions,
	}, nil
}
