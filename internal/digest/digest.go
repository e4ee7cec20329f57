// Package digest periodically summarizes which decks have cards due and
// publishes the result as a digest.due event.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/events"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
)

// DeckLister provides the deck summaries a digest is built from.
type DeckLister interface {
	ListDecks(ctx context.Context) ([]study.DeckOverview, error)
}

// Scheduler runs the digest on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	decks     DeckLister
	emitter   events.EventEmitter
	interval  int
	clock     func() time.Time
	logger    *slog.Logger
}

// New creates a digest scheduler. Nothing runs until Start is called.
func New(
	decks DeckLister,
	emitter events.EventEmitter,
	cfg config.DigestConfig,
	logger *slog.Logger,
) *Scheduler {
	if decks == nil {
		panic("decks cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.IntervalMinutes
	if interval <= 0 {
		interval = 60
	}

	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		decks:     decks,
		emitter:   emitter,
		interval:  interval,
		clock:     time.Now,
		logger:    logger.With("component", "digest"),
	}
}

// Start schedules the digest and returns immediately. The first run happens
// right away.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Minutes().Do(s.run); err != nil {
		return fmt.Errorf("failed to schedule digest: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("digest scheduler started", "interval_minutes", s.interval)
	return nil
}

// Stop terminates the schedule. A run in progress is allowed to finish.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("digest scheduler stopped")
}

func (s *Scheduler) run() {
	if _, err := s.RunOnce(context.Background()); err != nil {
		s.logger.Error("digest run failed", "error", err)
	}
}

// RunOnce builds a digest, emits it and returns it.
func (s *Scheduler) RunOnce(ctx context.Context) (events.DigestDue, error) {
	decks, err := s.decks.ListDecks(ctx)
	if err != nil {
		return events.DigestDue{}, fmt.Errorf("failed to list decks: %w", err)
	}

	digest := Build(decks, s.clock())

	event, err := events.NewEvent(events.TypeDigestDue, digest)
	if err != nil {
		return events.DigestDue{}, err
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		return digest, fmt.Errorf("failed to emit digest: %w", err)
	}

	s.logger.Debug("digest emitted", "total_due", digest.TotalDue, "decks", len(digest.Decks))
	return digest, nil
}

// Build turns deck summaries into a digest. Decks with nothing due are left
// out.
func Build(decks []study.DeckOverview, now time.Time) events.DigestDue {
	digest := events.DigestDue{
		GeneratedAt: now.UTC(),
		Decks:       []events.DigestEntry{},
	}
	for _, d := range decks {
		if d.Due == 0 {
			continue
		}
		digest.TotalDue += d.Due
		digest.Decks = append(digest.Decks, events.DigestEntry{
			DeckID: d.DeckID.String(),
			Title:  d.Title,
			Due:    d.Due,
		})
	}
	return digest
}
