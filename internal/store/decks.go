package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// DeckStore persists the learner's custom decks under CustomDecksKey.
type DeckStore struct {
	kv     KVStore
	logger *slog.Logger
}

// NewDeckStore creates a DeckStore over kv.
func NewDeckStore(kv KVStore, logger *slog.Logger) *DeckStore {
	if kv == nil {
		panic("kv store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckStore{
		kv:     kv,
		logger: logger.With("component", "deck_store"),
	}
}

// Load returns the stored custom decks in stored order. A missing key or an
// unparsable value yields no decks; individual decks that fail validation
// are dropped with a warning.
func (s *DeckStore) Load(ctx context.Context) ([]domain.Deck, error) {
	raw, err := s.kv.Get(ctx, CustomDecksKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, NewStoreError(CustomDecksKey, "get", "failed to read custom decks", err)
	}

	var decks []domain.Deck
	if err := json.Unmarshal(raw, &decks); err != nil {
		s.logger.WarnContext(ctx, "stored custom decks are malformed, using built-in decks only",
			"error", err,
			"bytes", len(raw))
		return nil, nil
	}

	valid := decks[:0]
	for i := range decks {
		if err := decks[i].Validate(); err != nil {
			s.logger.WarnContext(ctx, "dropping invalid stored deck",
				"deck_id", decks[i].ID,
				"error", err)
			continue
		}
		valid = append(valid, decks[i])
	}

	s.logger.DebugContext(ctx, "loaded custom decks", "count", len(valid))
	return valid, nil
}

// Save replaces the stored list of custom decks.
func (s *DeckStore) Save(ctx context.Context, decks []domain.Deck) error {
	if decks == nil {
		decks = []domain.Deck{}
	}

	raw, err := json.Marshal(decks)
	if err != nil {
		return fmt.Errorf("failed to encode custom decks: %w", err)
	}

	if err := s.kv.Put(ctx, CustomDecksKey, raw); err != nil {
		return NewStoreError(CustomDecksKey, "put", "failed to write custom decks", err)
	}
	return nil
}
