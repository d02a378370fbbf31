package api

import (
	"errors"
	"net/http"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/service"
	"github.com/avelar/lexmem/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, service.ErrQuizSessionNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// An expired session existed once; 410 lets clients distinguish it
	// from a bad id.
	case errors.Is(err, service.ErrQuizSessionExpired):
		return http.StatusGone

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrInvalidQuality),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// The request was well-formed but the catalog cannot satisfy it.
	case errors.Is(err, service.ErrNotEnoughWords):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, service.ErrQuizSessionNotFound):
		return "Quiz session not found"

	case errors.Is(err, service.ErrQuizSessionExpired):
		return "Quiz session expired"

	case errors.Is(err, service.ErrInvalidQuality):
		return "Quality rating must be between 0 and 5"

	case errors.Is(err, service.ErrNotEnoughWords):
		return "Not enough words to generate this quiz"

	case errors.Is(err, domain.ErrInvalidQuizType):
		return "Unknown quiz type"

	case errors.Is(err, domain.ErrInvalidWordCount):
		return "Word count must be greater than zero"

	case errors.Is(err, domain.ErrUnknownQuestionID):
		return "Answer references an unknown question"

	case errors.Is(err, domain.ErrQuestionAnswered):
		return "Duplicate answer for a question"

	case errors.Is(err, domain.ErrInvalidAnswerIndex):
		return "Answer index is out of range"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case store.IsNotFoundError(err):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}
