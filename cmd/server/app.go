package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/digest"
	"github.com/kanjisaya/kanji-srs/internal/domain/srs"
	"github.com/kanjisaya/kanji-srs/internal/events"
	"github.com/kanjisaya/kanji-srs/internal/platform/kvstore"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
	"github.com/kanjisaya/kanji-srs/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv           store.KVStore
	eventEmitter *events.InMemoryEventEmitter
	studyService study.StudyService
	digest       *digest.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized and the persisted study state loaded.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	kv, err := kvstore.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	app.kv = kv

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	app.studyService = study.NewStudyService(
		store.NewProgressStore(kv, logger),
		store.NewDeckStore(kv, logger),
		srs.NewDefaultService(),
		app.eventEmitter,
		logger,
	)
	if err := app.studyService.Load(ctx); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load study state: %w", err)
	}

	if cfg.Digest.Enabled {
		app.digest = digest.New(app.studyService, app.eventEmitter, cfg.Digest, logger)
		if err := app.digest.Start(); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to start digest: %w", err)
		}
	}

	logger.Info("Application initialized successfully", "store_driver", cfg.Store.Driver)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.digest != nil {
		app.digest.Stop()
	}

	if app.kv != nil {
		if err := app.kv.Close(); err != nil {
			app.logger.Error("Error closing store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
