package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// ProgressStore persists the progress snapshot under ProgressKey.
type ProgressStore struct {
	kv     KVStore
	logger *slog.Logger
}

// NewProgressStore creates a ProgressStore over kv.
func NewProgressStore(kv KVStore, logger *slog.Logger) *ProgressStore {
	if kv == nil {
		panic("kv store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressStore{
		kv:     kv,
		logger: logger.With("component", "progress_store"),
	}
}

// Load returns the stored snapshot. A missing key yields an empty snapshot.
// Unparsable data is logged and also yields an empty snapshot; only backend
// failures are returned as errors.
func (s *ProgressStore) Load(ctx context.Context) (domain.Progress, error) {
	raw, err := s.kv.Get(ctx, ProgressKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.NewProgress(nil), nil
		}
		return domain.NewProgress(nil), NewStoreError(ProgressKey, "get", "failed to read progress", err)
	}

	var progress domain.Progress
	if err := json.Unmarshal(raw, &progress); err != nil {
		s.logger.WarnContext(ctx, "stored progress is malformed, starting with empty progress",
			"error", err,
			"bytes", len(raw))
		return domain.NewProgress(nil), nil
	}

	s.logger.DebugContext(ctx, "loaded progress", "entries", progress.Len())
	return progress, nil
}

// Save replaces the stored snapshot.
func (s *ProgressStore) Save(ctx context.Context, progress domain.Progress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	if err := s.kv.Put(ctx, ProgressKey, raw); err != nil {
		return NewStoreError(ProgressKey, "put", "failed to write progress", err)
	}
	return nil
}
