package srs

import (
	"math"
	"time"

	"github.com/avelar/lexmem/internal/domain"
)

// nextEaseFactor applies the SM-2 easiness adjustment for a quality rating.
//
// The formula is ef' = ef + (0.1 - (5-q) * (0.08 + (5-q) * 0.02)), clamped
// from below at params.MinEaseFactor. It runs on every submission, lapse or
// pass: a perfect recall (q=5) raises the factor by 0.1, a blackout (q=0)
// lowers it by 0.8.
func nextEaseFactor(currentEF float64, quality domain.Quality, params *Params) float64 {
	q := float64(quality)
	newEF := currentEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// nextInterval computes the interval in days for a pass, given the
// repetition count after the pass has been recorded.
//
// The first pass yields FirstPassInterval, the second SecondPassInterval,
// and later passes grow geometrically: round(previousInterval * easeFactor).
// The ease factor used is the one already adjusted for this submission.
func nextInterval(previousInterval, repetitions int, easeFactor float64, params *Params) int {
	var interval int
	switch {
	case repetitions <= 1:
		interval = params.FirstPassInterval
	case repetitions == 2:
		interval = params.SecondPassInterval
	default:
		interval = int(math.Round(float64(previousInterval) * easeFactor))
	}

	if params.MaxInterval > 0 && interval > params.MaxInterval {
		interval = params.MaxInterval
	}

	return interval
}

// nextState maps a prior learning state and a quality rating to the new
// learning state. The prior state is never mutated; a fresh copy is
// returned. Inputs are assumed valid (the Service wrapper rejects bad ones).
//
// Referential transparency matters here: identical inputs always produce
// identical outputs, which makes retried submissions idempotent.
func nextState(
	prior *domain.WordLearningState,
	quality domain.Quality,
	now time.Time,
	params *Params,
) *domain.WordLearningState {
	state := &domain.WordLearningState{
		WordID:         prior.WordID,
		EasinessFactor: nextEaseFactor(prior.EasinessFactor, quality, params),
	}

	if quality.IsLapse() {
		state.Repetitions = 0
		state.Interval = params.LapseInterval
	} else {
		state.Repetitions = prior.Repetitions + 1
		state.Interval = nextInterval(prior.Interval, state.Repetitions, state.EasinessFactor, params)
	}

	state.NextReviewDate = now.AddDate(0, 0, state.Interval)
	reviewedAt := now
	state.LastReviewedAt = &reviewedAt

	return state
}
