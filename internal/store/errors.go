package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrWordNotFound, ErrQuizSessionNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second learning state for the same word).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrWordNotFound indicates that the requested word does not exist in the store.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrLearningStateNotFound indicates that the word has no learning state yet.
	ErrLearningStateNotFound = fmt.Errorf("%w: learning state", ErrNotFound)

	// ErrQuizSessionNotFound indicates that the quiz session id is unknown.
	ErrQuizSessionNotFound = fmt.Errorf("%w: quiz session", ErrNotFound)

	// ErrQuizSessionExpired indicates that the quiz session existed but its
	// TTL has elapsed. Deliberately distinct from ErrQuizSessionNotFound so
	// the transport can report 410 rather than 404.
	ErrQuizSessionExpired = errors.New("quiz session expired")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
