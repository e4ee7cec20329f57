// Package sqlite provides a file-backed store.KVStore on SQLite, accessed
// through sqlx.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kanjisaya/kanji-srs/internal/store"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// kvEntry is one row of kv_entries.
type kvEntry struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SQLiteKVStore implements store.KVStore on a SQLite database file.
type SQLiteKVStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ store.KVStore = (*SQLiteKVStore)(nil)

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*SQLiteKVStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv_entries table: %w", err)
	}

	logger.Debug("sqlite store opened", "path", path)
	return &SQLiteKVStore{
		db:     db,
		logger: logger.With("component", "sqlite_kv_store"),
	}, nil
}

// Get implements store.KVStore.
func (s *SQLiteKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrInvalidKey
	}

	var entry kvEntry
	err := s.db.GetContext(ctx, &entry,
		`SELECT key, value, updated_at FROM kv_entries WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		if errors.Is(err, sql.ErrConnDone) {
			return nil, fmt.Errorf("%w: %v", store.ErrClosed, err)
		}
		s.logger.ErrorContext(ctx, "failed to read key", "key", key, "error", err)
		return nil, err
	}

	return []byte(entry.Value), nil
}

// Put implements store.KVStore.
func (s *SQLiteKVStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	entry := kvEntry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`,
		entry,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to write key", "key", key, "error", err)
		return err
	}

	return nil
}

// Close implements store.KVStore.
func (s *SQLiteKVStore) Close() error {
	return s.db.Close()
}
