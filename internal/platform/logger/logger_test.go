// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetupLevels checks that each configured level filters output as expected.
func TestSetupLevels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	testCases := []struct {
		level      string
		debugShown bool
		infoShown  bool
		warnShown  bool
	}{
		{level: "debug", debugShown: true, infoShown: true, warnShown: true},
		{level: "info", debugShown: false, infoShown: true, warnShown: true},
		{level: "WARN", debugShown: false, infoShown: false, warnShown: true},
		{level: "error", debugShown: false, infoShown: false, warnShown: false},
		{level: "bogus", debugShown: false, infoShown: true, warnShown: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tc.debugShown, strings.Contains(out, "debug message"))
			assert.Equal(t, tc.infoShown, strings.Contains(out, "info message"))
			assert.Equal(t, tc.warnShown, strings.Contains(out, "warn message"))
		})
	}
}

func TestSetupSetsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	slog.Info("through default", "component", "test")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "through default", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
	assert.Equal(t, "INFO", entries[0]["level"])
}

func TestContextLogger(t *testing.T) {
	l, buf := logger.GetTestLogger(t)

	ctx := logger.WithLogger(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, l, logger.FromContextOrDefault(ctx, nil))

	logger.FromContextOrDefault(ctx, nil).Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Nil(t, logger.FromContext(context.Background()))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}
