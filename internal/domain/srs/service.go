package srs

import (
	"fmt"
	"time"

	"github.com/avelar/lexmem/internal/domain"
)

// Service validates inputs and applies the scheduling algorithm. The
// authoritative arithmetic runs on the remote collaborator; this engine is
// the reference implementation used as the test oracle and by the bundled
// collaborator server.
type Service interface {
	// NextState computes the learning state that follows a review. The
	// prior state is not modified. Out-of-range quality and malformed prior
	// states are rejected with an error wrapping domain.ErrValidation.
	NextState(
		prior *domain.WordLearningState,
		quality domain.Quality,
		now time.Time,
	) (*domain.WordLearningState, error)
}

// Verify interface compliance at compile time
var _ Service = (*defaultService)(nil)

type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling engine with the standard SM-2
// constants.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling engine with custom constants.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

func (s *defaultService) NextState(
	prior *domain.WordLearningState,
	quality domain.Quality,
	now time.Time,
) (*domain.WordLearningState, error) {
	if prior == nil {
		return nil, fmt.Errorf("%w: prior learning state cannot be nil", domain.ErrValidation)
	}

	if !quality.IsValid() {
		return nil, domain.ErrInvalidQuality
	}

	// A prior that breaks the invariants is a data-integrity error. It is
	// rejected rather than silently repaired.
	if err := prior.Validate(); err != nil {
		return nil, fmt.Errorf("malformed prior state: %w", err)
	}

	return nextState(prior, quality, now, s.params), nil
}
