package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WATCHMANIA_CONFIG", "")
	for _, key := range []string{
		"WATCHMANIA_API_BASE_URL", "WATCHMANIA_API_RETRIES", "WATCHMANIA_UI_GRID_COLUMNS",
		"WATCHMANIA_LOG_LEVEL", "WATCHMANIA_API_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	require.Equal(t, 0, cfg.API.Retries)
	require.True(t, cfg.API.Compression)
	require.Equal(t, 128, cfg.API.ETagCache.Size)
	require.Equal(t, 2, cfg.UI.GridColumns)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, ".local", "state", "watchmania", "watchmania.log"), cfg.Log.File)
	require.Empty(t, cfg.Metrics.Address)
	require.Empty(t, cfg.Sentry.DSN)

	timeout, err := cfg.API.TimeoutDuration()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, timeout)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://localhost:3000"
retries = 2
timeout = "5s"

[api.etag_cache]
size = 0

[ui]
grid_columns = 3
`), 0o644))
	t.Setenv("WATCHMANIA_CONFIG", path)
	t.Setenv("WATCHMANIA_UI_GRID_COLUMNS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	require.Equal(t, 2, cfg.API.Retries)
	require.Equal(t, 0, cfg.API.ETagCache.Size)
	require.Equal(t, 4, cfg.UI.GridColumns)
	require.Equal(t, path, Path())

	timeout, err := cfg.API.TimeoutDuration()
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, timeout)
}

func TestLoadDefaultPath(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".config", "watchmania")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ngrid_columns = 5\n"), 0o644))
	require.Equal(t, filepath.Join(dir, "config.toml"), Path())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.UI.GridColumns)
}

func TestLoadEnvBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("WATCHMANIA_API_BASE_URL", "https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url = "), 0o644))
	t.Setenv("WATCHMANIA_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]func(c *Config){
		"scheme":       func(c *Config) { c.API.BaseURL = "ftp://example.com" },
		"no host":      func(c *Config) { c.API.BaseURL = "https://" },
		"timeout":      func(c *Config) { c.API.Timeout = "soon" },
		"retries":      func(c *Config) { c.API.Retries = -1 },
		"cache size":   func(c *Config) { c.API.ETagCache.Size = -5 },
		"cache ttl":    func(c *Config) { c.API.ETagCache.TTL = "0s" },
		"grid columns": func(c *Config) { c.UI.GridColumns = 9 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		require.Error(t, cfg.Validate(), name)
	}

	require.NoError(t, Default().Validate())
}
