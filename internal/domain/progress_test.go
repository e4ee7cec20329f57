package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressMissingEntryIsDue(t *testing.T) {
	t.Parallel()

	p := NewProgress(nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, ok := p.Lookup("1")
	assert.False(t, ok)
	assert.True(t, p.NextDue("1").IsZero(), "missing entry should map to the zero instant")
	assert.True(t, p.IsDue("1", now))
}

func TestProgressWithDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	original := NewProgress(map[ID]time.Time{"1": now})

	updated := original.With("2", now.Add(24*time.Hour))

	assert.Equal(t, 1, original.Len(), "original snapshot must be unchanged")
	assert.Equal(t, 2, updated.Len())
	assert.False(t, updated.IsDue("2", now))
	assert.True(t, original.IsDue("2", now))
}

func TestProgressIsDueBoundary(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewProgress(map[ID]time.Time{
		"now":    now,
		"later":  now.Add(time.Millisecond),
		"before": now.Add(-time.Hour),
	})

	assert.True(t, p.IsDue("now", now), "next-due equal to now is due")
	assert.True(t, p.IsDue("before", now))
	assert.False(t, p.IsDue("later", now))
}

func TestProgressJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes epoch milliseconds", func(t *testing.T) {
		at := time.UnixMilli(1714564800000).UTC()
		data, err := json.Marshal(NewProgress(map[ID]time.Time{"1": at}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"1":1714564800000}`, string(data))
	})

	t.Run("decodes epoch milliseconds", func(t *testing.T) {
		var p Progress
		require.NoError(t, json.Unmarshal([]byte(`{"1":1714564800000,"2":0}`), &p))

		got, ok := p.Lookup("1")
		require.True(t, ok)
		assert.Equal(t, int64(1714564800000), got.UnixMilli())

		_, ok = p.Lookup("2")
		assert.False(t, ok, "a stored zero behaves like a missing entry")
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		var p Progress
		err := json.Unmarshal([]byte(`{"1":"tomorrow"}`), &p)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}
