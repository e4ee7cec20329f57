// Package kvstore opens the key-value backend selected by configuration.
package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/platform/memory"
	"github.com/kanjisaya/kanji-srs/internal/platform/postgres"
	"github.com/kanjisaya/kanji-srs/internal/platform/sqlite"
	"github.com/kanjisaya/kanji-srs/internal/store"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open returns the store for cfg.Store.Driver. The Postgres schema must
// already be migrated.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.KVStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Store.Driver {
	case DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres store")
		return postgres.NewPostgresKVStore(db, logger), nil

	case DriverSQLite:
		kv, err := sqlite.Open(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", "path", cfg.Store.SQLitePath)
		return kv, nil

	case DriverMemory:
		logger.Warn("using in-memory store, progress will not survive a restart")
		return memory.NewKVStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
