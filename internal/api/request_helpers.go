package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kanjisaya/kanji-srs/internal/api/shared"
	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// errBodyTooLarge is returned when a request body exceeds shared.MaxBodyBytes.
var errBodyTooLarge = errors.New("request body too large")

// getPathID extracts a deck or card identifier from the URL path parameters.
//
// Returns:
//   - (id, nil): The non-empty identifier
//   - ("", error): The parameter is missing; wraps domain.ErrValidation
func getPathID(r *http.Request, paramName string) (domain.ID, error) {
	param := chi.URLParam(r, paramName)
	if param == "" {
		return "", fmt.Errorf("%s is required: %w", paramName, domain.ErrValidation)
	}
	return domain.ID(param), nil
}

// readBody reads the whole request body, refusing anything larger than
// shared.MaxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	return body, nil
}
