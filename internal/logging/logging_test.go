package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/watchmania/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "nested", "watchmania.log")
	cfg.Log.Level = "debug"

	l, err := New(cfg, "test")
	require.NoError(t, err)
	l.Debug().Str("op", "popular_movies").Msg("Sending request")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	require.Contains(t, string(data), "Sending request")
	require.Contains(t, string(data), "op=popular_movies")
}

func TestNewWithoutFileDiscards(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = ""

	l, err := New(cfg, "test")
	require.NoError(t, err)
	l.Error().Msg("nowhere")
	require.NoError(t, l.Close())
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "loud")

	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	require.Contains(t, buf.String(), "Invalid log level")

	logger.Debug().Msg("hidden")
	require.NotContains(t, buf.String(), "hidden")
}
