package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/kanjisaya/kanji-srs/internal/store"
)

// Open opens a pgx-backed *sql.DB, configures the pool and pings the server.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// A single learner's two keys need very few connections
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", MapError(err))
	}

	return db, nil
}

// PostgresKVStore implements store.KVStore on the kv_entries table.
type PostgresKVStore struct {
	db     store.DBTX
	closer func() error
	logger *slog.Logger
}

var _ store.KVStore = (*PostgresKVStore)(nil)

// NewPostgresKVStore creates a KV store on db. Close closes db.
func NewPostgresKVStore(db *sql.DB, logger *slog.Logger) *PostgresKVStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresKVStore{
		db:     db,
		closer: db.Close,
		logger: logger.With("component", "postgres_kv_store"),
	}
}

// WithTx returns a store that runs its statements in tx. Closing it is a
// no-op; the transaction's owner commits or rolls back.
func (s *PostgresKVStore) WithTx(tx *sql.Tx) *PostgresKVStore {
	return &PostgresKVStore{
		db:     tx,
		closer: func() error { return nil },
		logger: s.logger,
	}
}

// Get implements store.KVStore.
func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrInvalidKey
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		mapped := MapError(err)
		if !store.IsNotFoundError(mapped) {
			s.logger.ErrorContext(ctx, "failed to read key", "key", key, "error", err)
		}
		return nil, mapped
	}

	return []byte(value), nil
}

// Put implements store.KVStore. The upsert is a single statement, so readers
// see either the previous value or the new one.
func (s *PostgresKVStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to write key", "key", key, "error", err)
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "wrote key", "key", key, "bytes", len(value))
	return nil
}

// Close implements store.KVStore.
func (s *PostgresKVStore) Close() error {
	return s.closer()
}
