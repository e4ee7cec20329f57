package digest_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/digest"
	"github.com/kanjisaya/kanji-srs/internal/domain/srs"
	"github.com/kanjisaya/kanji-srs/internal/events"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listerFunc func(ctx context.Context) ([]study.DeckOverview, error)

func (f listerFunc) ListDecks(ctx context.Context) ([]study.DeckOverview, error) {
	return f(ctx)
}

type collector struct {
	mu      sync.Mutex
	digests []events.DigestDue
}

func (c *collector) HandleEvent(ctx context.Context, event *events.Event) error {
	var d events.DigestDue
	if err := event.UnmarshalPayload(&d); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.digests = append(c.digests, d)
	return nil
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.digests)
}

func sampleDecks(ctx context.Context) ([]study.DeckOverview, error) {
	return []study.DeckOverview{
		{DeckSummary: srs.DeckSummary{DeckID: "n4-core-v2-p1", Title: "Part 1", Total: 20, Due: 5}, Builtin: true},
		{DeckSummary: srs.DeckSummary{DeckID: "n4-core-v2-p2", Title: "Part 2", Total: 20, Due: 0}, Builtin: true},
		{DeckSummary: srs.DeckSummary{DeckID: "mine", Title: "Mine", Total: 3, Due: 3}},
	}, nil
}

func TestBuild(t *testing.T) {
	decks, _ := sampleDecks(context.Background())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*3600))

	d := digest.Build(decks, now)
	assert.Equal(t, 8, d.TotalDue)
	assert.Equal(t, time.UTC, d.GeneratedAt.Location())
	require.Len(t, d.Decks, 2)
	assert.Equal(t, "n4-core-v2-p1", d.Decks[0].DeckID)
	assert.Equal(t, "mine", d.Decks[1].DeckID)

	empty := digest.Build(nil, now)
	assert.Equal(t, 0, empty.TotalDue)
	assert.NotNil(t, empty.Decks)
}

func TestRunOnce(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(nil)
	c := &collector{}
	emitter.RegisterHandler(c)

	s := digest.New(listerFunc(sampleDecks), emitter, config.DigestConfig{Enabled: true, IntervalMinutes: 5}, nil)
	d, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, d.TotalDue)

	require.Equal(t, 1, c.count())
	assert.Equal(t, d.TotalDue, c.digests[0].TotalDue)
	assert.Len(t, c.digests[0].Decks, 2)
}

func TestRunOnceListFailure(t *testing.T) {
	boom := errors.New("store offline")
	failing := listerFunc(func(ctx context.Context) ([]study.DeckOverview, error) {
		return nil, boom
	})

	c := &collector{}
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(c)

	s := digest.New(failing, emitter, config.DigestConfig{IntervalMinutes: 5}, nil)
	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.count())
}

func TestStartRunsImmediately(t *testing.T) {
	c := &collector{}
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(c)

	s := digest.New(listerFunc(sampleDecks), emitter, config.DigestConfig{Enabled: true, IntervalMinutes: 60}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return c.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewPanicsOnNilDependencies(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(nil)
	assert.Panics(t, func() { digest.New(nil, emitter, config.DigestConfig{}, nil) })
	assert.Panics(t, func() { digest.New(listerFunc(sampleDecks), nil, config.DigestConfig{}, nil) })
}
