package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kanjisaya/kanji-srs/internal/api/shared"
	"github.com/kanjisaya/kanji-srs/internal/catalog"
	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
	"github.com/kanjisaya/kanji-srs/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, study.ErrDeckNotFound):
		return http.StatusNotFound

	// Conflict errors: the request is well formed but the session or catalog
	// is not in a state that allows it
	case errors.Is(err, study.ErrBuiltinDeck),
		errors.Is(err, study.ErrNotStudying),
		errors.Is(err, study.ErrNoCurrentCard):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, catalog.ErrInvalidDeckFormat),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Backend errors
	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, store.ErrClosed):
		return http.StatusServiceUnavailable

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
	case errors.Is(err, study.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, study.ErrBuiltinDeck):
		return "Built-in decks cannot be replaced"

	case errors.Is(err, study.ErrNotStudying):
		return "No deck is being studied"

	case errors.Is(err, study.ErrNoCurrentCard):
		return "Deck completed: no cards are due"

	case errors.Is(err, catalog.ErrInvalidDeckFormat):
		return "Invalid deck format: JSON object with id, title and cards[] is required"

	case errors.Is(err, domain.ErrInvalidRating):
		return "Invalid rating"

	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, store.ErrClosed):
		return "Storage is temporarily unavailable"

	default:
		var svcErr *study.ServiceError
		if errors.As(err, &svcErr) {
			switch svcErr.Operation {
			case "rate":
				return "Failed to save progress"
			case "add_deck":
				return "Failed to save deck"
			}
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status code and safe message for err. fallback,
// when non-empty, replaces the generic message for internal errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'RateRequest.Rating' Error:Field validation for 'Rating' failed on the 'oneof' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "must be one of wrong, hard, easy"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
