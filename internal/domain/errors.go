package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy for submission calls against the remote collaborator.
// Every failure of a session operation wraps exactly one of these sentinels
// so callers can classify it with errors.Is and decide between retry,
// abandon, and restart.
var (
	// ErrValidation is returned when an input fails validation (quality out
	// of range, malformed learning state). Fatal to the call, never worth
	// retrying with the same input.
	ErrValidation = errors.New("validation failed")

	// ErrTransient is returned for timeouts and connection failures. The
	// session remains in its pre-submission state and the caller may retry
	// explicitly.
	ErrTransient = errors.New("transient network failure")

	// ErrConflict is returned when the remote side already holds a newer
	// recorded review for the word. Surfaced, never auto-resolved.
	ErrConflict = errors.New("conflicting remote state")

	// ErrSessionExpired is returned when a quiz session id is no longer
	// valid. Fatal to that session; the controller aborts and the caller
	// must start a new session.
	ErrSessionExpired = errors.New("session expired")
)

// Validation errors for learning-state fields. Each wraps ErrValidation so
// callers can classify them without matching individual sentinels.
var (
	ErrInvalidQuality    = fmt.Errorf("%w: quality rating must be between 0 and 5", ErrValidation)
	ErrInvalidInterval   = fmt.Errorf("%w: interval must be greater than or equal to 0", ErrValidation)
	ErrInvalidEaseFactor = fmt.Errorf("%w: easiness factor must be at least 1.3", ErrValidation)
	ErrInvalidRepetition = fmt.Errorf("%w: repetitions must be greater than or equal to 0", ErrValidation)
	ErrEmptyWordID       = fmt.Errorf("%w: word ID cannot be empty", ErrValidation)
)
