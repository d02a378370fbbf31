package srs_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/domain/srs"
)

func validPrior() *domain.WordLearningState {
	return &domain.WordLearningState{
		WordID:         uuid.New(),
		EasinessFactor: 2.5,
		Interval:       6,
		Repetitions:    2,
		NextReviewDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceNextState(t *testing.T) {
	t.Parallel()
	service := srs.NewDefaultService()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	state, err := service.NextState(validPrior(), 4, now)
	require.NoError(t, err)

	assert.Equal(t, 3, state.Repetitions)
	assert.Equal(t, 15, state.Interval)
	assert.InDelta(t, 2.5, state.EasinessFactor, 1e-9)
	assert.True(t, state.NextReviewDate.Equal(now.AddDate(0, 0, 15)))
}

func TestServiceNextStateValidation(t *testing.T) {
	t.Parallel()
	service := srs.NewDefaultService()
	now := time.Now().UTC()

	t.Run("nil prior", func(t *testing.T) {
		_, err := service.NextState(nil, 3, now)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("quality below range", func(t *testing.T) {
		_, err := service.NextState(validPrior(), -1, now)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("quality above range", func(t *testing.T) {
		_, err := service.NextState(validPrior(), 6, now)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative prior interval rejected, not repaired", func(t *testing.T) {
		prior := validPrior()
		prior.Interval = -3

		_, err := service.NextState(prior, 4, now)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	})

	t.Run("ease factor below floor rejected", func(t *testing.T) {
		prior := validPrior()
		prior.EasinessFactor = 1.1

		_, err := service.NextState(prior, 4, now)
		assert.ErrorIs(t, err, domain.ErrInvalidEaseFactor)
	})
}

func TestServiceWithCustomParams(t *testing.T) {
	t.Parallel()
	params := srs.NewDefaultParams()
	params.MaxInterval = 30
	service := srs.NewServiceWithParams(params)
	now := time.Now().UTC()

	prior := validPrior()
	prior.Interval = 20
	prior.Repetitions = 4

	state, err := service.NextState(prior, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 30, state.Interval)
}
