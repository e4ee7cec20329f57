package kvstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/platform/kvstore"
	"github.com/kanjisaya/kanji-srs/internal/platform/memory"
	"github.com/kanjisaya/kanji-srs/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	kv, err := kvstore.Open(context.Background(), &config.Config{
		Store: config.StoreConfig{Driver: kvstore.DriverMemory},
	}, nil)
	require.NoError(t, err)
	defer kv.Close()

	assert.IsType(t, &memory.KVStore{}, kv)
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "kanji.db")

	kv, err := kvstore.Open(ctx, &config.Config{
		Store: config.StoreConfig{Driver: kvstore.DriverSQLite, SQLitePath: path},
	}, nil)
	require.NoError(t, err)
	defer kv.Close()

	assert.IsType(t, &sqlite.SQLiteKVStore{}, kv)
	require.NoError(t, kv.Put(ctx, "progress", []byte(`{}`)))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := kvstore.Open(context.Background(), &config.Config{
		Store: config.StoreConfig{Driver: "redis"},
	}, nil)
	assert.ErrorContains(t, err, `unknown store driver "redis"`)
}
