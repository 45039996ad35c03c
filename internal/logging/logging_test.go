package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDir(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })
	t.Setenv("HIREPIPE_LOG_LEVEL", "")

	dir := filepath.Join(t.TempDir(), "logs")
	closer, err := InitDir(dir)
	require.NoError(t, err)

	slog.Info("card moved", "card", "A1")
	require.NoError(t, closer.Close())
	slog.SetDefault(defaultLogger)

	data, err := os.ReadFile(filepath.Join(dir, "hirepipe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "card moved")
	assert.Contains(t, string(data), "card=A1")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelDebug,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}
