package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/platform/kvstore"
	"github.com/kanjisaya/kanji-srs/internal/platform/postgres"
)

// runMigrations executes a goose command against the configured Postgres
// database. The other store drivers manage their schema themselves.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q (want one of %s)",
			command, strings.Join(postgres.MigrationCommands, ", "))
	}
	if cfg.Store.Driver != kvstore.DriverPostgres {
		return fmt.Errorf("migrations only apply to the postgres store driver, configured driver is %q",
			cfg.Store.Driver)
	}

	log := logger.With("correlation_id", uuid.NewString(), "command", command)
	log.Info("Executing migrations")

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, log); err != nil {
		return err
	}

	log.Info("Migrations completed")
	return nil
}
