// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter_Levels(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{name: "debug level", logLevel: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{name: "info level", logLevel: "info", wantInfo: true, wantWarn: true},
		{name: "warn level", logLevel: "warn", wantWarn: true},
		{name: "error level", logLevel: "error"},
		{name: "case insensitive - DEBUG", logLevel: "DEBUG", wantDebug: true, wantInfo: true, wantWarn: true},
		{name: "invalid falls back to info", logLevel: "verbose", wantInfo: true, wantWarn: true},
	}

	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.logLevel, Port: 8080}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug test message")
			l.Info("info test message")
			l.Warn("warn test message")
			l.Error("error test message")

			out := buf.String()
			assert.Equal(t, tc.wantDebug, strings.Contains(out, "debug test message"))
			assert.Equal(t, tc.wantInfo, strings.Contains(out, "info test message"))
			assert.Equal(t, tc.wantWarn, strings.Contains(out, "warn test message"))
			assert.True(t, strings.Contains(out, "error test message"))

			assert.Same(t, l, slog.Default(), "Setup installs the default logger")
			logger.AssertLogField(t, buf, "service", "tubetext")
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, ok := logger.ParseLevel(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextHelpers(t *testing.T) {
	l, buf := logger.GetTestLogger(t)
	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))

	ctx := context.Background()
	assert.Nil(t, logger.FromContext(ctx))
	assert.Same(t, fallback, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(ctx, nil))

	ctx = logger.WithLogger(ctx, l)
	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, l, logger.FromContextOrDefault(ctx, fallback))

	logger.FromContextOrDefault(ctx, nil).Info("from context")
	logger.AssertLogContains(t, buf, "from context")

	ctx = logger.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", logger.RequestID(ctx))
	assert.Empty(t, logger.RequestID(context.Background()))
}
