package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxpreview/internal/config"
)

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := SetupWithWriter(&config.Config{LogLevel: "debug", LogFormat: "text"}, &buf)
	require.NotNil(t, logger)

	logger.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := SetupWithWriter(&config.Config{LogLevel: "info", LogFormat: "json"}, &buf)
	logger.Info("test-msg")
	assert.Contains(t, buf.String(), `"msg":"test-msg"`)
}

func TestSetup_SetsDefault(t *testing.T) {
	logger := SetupWithWriter(&config.Config{LogLevel: "info", LogFormat: "text"}, io.Discard)
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestSetup_QuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer

	logger := SetupWithWriter(&config.Config{LogLevel: "info", LogFormat: "text", Quiet: true}, &buf)
	logger.Info("should-not-appear")
	logger.Error("should-appear")

	assert.NotContains(t, buf.String(), "should-not-appear")
	assert.Contains(t, buf.String(), "should-appear")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		f, err := OpenLogFile("")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("creates directories and appends", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nested", "dir", "fx.log")

		f, err := OpenLogFile(p)
		require.NoError(t, err)
		_, _ = f.WriteString("first\n")
		require.NoError(t, f.Close())

		f, err = OpenLogFile(p)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, 2, bytes.Count(data, []byte("=== fxpreview ")))
		assert.Contains(t, string(data), "first\n")
	})
}

func TestSink(t *testing.T) {
	cfg := config.Default()

	w, closeFn, err := Sink(cfg, true, os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	assert.NoError(t, closeFn())

	w, closeFn, err = Sink(cfg, false, os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	cfg.LogFile = filepath.Join(t.TempDir(), "fx.log")
	w, closeFn, err = Sink(cfg, true, os.Stderr)
	require.NoError(t, err)
	assert.IsType(t, &os.File{}, w)
	assert.NoError(t, closeFn())
}

func TestContext_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Equal(t, logger, FromContext(NewContext(context.Background(), logger)))
}

func TestFromContext_FallbackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
