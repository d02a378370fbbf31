// Package srs implements the spaced-repetition scheduling engine. The
// arithmetic is the classic SM-2 family: a 0-5 quality rating and a word's
// prior learning state map to its next state. Every function here is pure;
// the current time is always passed in, never read from a clock.
package srs

import "github.com/avelar/lexmem/internal/domain"

// Params defines the configurable constants of the scheduling algorithm.
type Params struct {
	// MinEaseFactor is the floor applied after every easiness adjustment.
	MinEaseFactor float64

	// FirstPassInterval is the interval in days after the first pass.
	FirstPassInterval int

	// SecondPassInterval is the interval in days after the second
	// consecutive pass.
	SecondPassInterval int

	// LapseInterval is the interval in days after a lapse (quality <= 2).
	LapseInterval int

	// MaxInterval caps the computed interval in days. Zero disables the cap.
	MaxInterval int
}

// NewDefaultParams returns the standard SM-2 constants.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:      domain.MinEaseFactor,
		FirstPassInterval:  1,
		SecondPassInterval: 6,
		LapseInterval:      1,
		MaxInterval:        0,
	}
}
