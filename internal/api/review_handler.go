// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/api/shared"
	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/platform/logger"
	"github.com/avelar/lexmem/internal/service"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// GetDueReviews handles GET /v1/reviews/due requests.
// It returns every word due for review right now, oldest first.
func (h *ReviewHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	items, err := h.reviewService.GetDueReviews(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list due reviews", err)
		return
	}

	if items == nil {
		// An empty due-set serializes as [], never null.
		items = []domain.ReviewItem{}
	}

	log.Debug("listed due reviews", slog.Int("total", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, DueReviewsResponse{
		Items: items,
		Total: len(items),
	})
}

// SubmitReview handles POST /v1/reviews requests.
// It records one quality rating and returns the updated schedule.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID format")
		return
	}

	outcome, err := h.reviewService.SubmitReview(r.Context(), wordID, domain.Quality(*req.Quality))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review submitted",
		slog.String("word_id", wordID.String()),
		slog.Int("quality", *req.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, outcome)
}
