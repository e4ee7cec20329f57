package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/kanjisaya/kanji-srs/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		assert.True(t, strings.HasSuffix(f, ".sql"), "unexpected file %s", f)
	}
	assert.Contains(t, files, "00001_create_kv_entries.sql")
}

func TestMigrationFilesHaveGooseAnnotations(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)

	for _, f := range files {
		content, err := embeddedMigrations.ReadFile(migrationsDir + "/" + f)
		require.NoError(t, err)
		assert.Contains(t, string(content), "-- +goose Up", f)
		assert.Contains(t, string(content), "-- +goose Down", f)
	}
}

func TestMigrateUnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, "sideways", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}

func TestSlogGooseLogger(t *testing.T) {
	l, buf := logger.GetTestLogger(t)
	gl := &slogGooseLogger{logger: l}

	gl.Printf("applied %d migrations", 1)
	assert.NotPanics(t, func() {
		gl.Fatalf("failed: %s", "boom")
	}, "Fatalf must not exit")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "applied 1 migrations", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "failed: boom", entries[1]["msg"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}
