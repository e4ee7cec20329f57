package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidRating is returned when a rating is not one of wrong, hard or easy.
	ErrInvalidRating = errors.New("invalid rating")
)

// Deck and card validation errors.
var (
	// ErrEmptyDeckID is returned when a deck has no identifier.
	ErrEmptyDeckID = errors.New("deck ID cannot be empty")

	// ErrMissingCards is returned when a deck has no cards array at all.
	// An empty array is allowed.
	ErrMissingCards = errors.New("deck cards are required")

	// ErrEmptyCardID is returned when a card has no identifier.
	ErrEmptyCardID = errors.New("card ID cannot be empty")

	// ErrDuplicateCardID is returned when two cards in one deck share an identifier.
	ErrDuplicateCardID = errors.New("card ID must be unique within a deck")
)
