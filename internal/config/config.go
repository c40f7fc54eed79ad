package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the watchlist API host.
const DefaultBaseURL = "https://watch-mania.herokuapp.com"

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	UI      UIConfig      `mapstructure:"ui"`
}

// APIConfig holds watchlist API client settings.
type APIConfig struct {
	BaseURL     string          `mapstructure:"base_url"`
	Timeout     string          `mapstructure:"timeout"` // Go duration string like "30s"
	UserAgent   string          `mapstructure:"user_agent"`
	Retries     int             `mapstructure:"retries"`
	Compression bool            `mapstructure:"compression"`
	ETagCache   ETagCacheConfig `mapstructure:"etag_cache"`
}

// ETagCacheConfig sizes the response revalidation cache. Size 0 disables it.
type ETagCacheConfig struct {
	Size int    `mapstructure:"size"`
	TTL  string `mapstructure:"ttl"`
}

// LogConfig holds logging settings. The terminal belongs to the UI, so logs go to a file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// MetricsConfig enables the Prometheus endpoint when Address is set.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	GridColumns int `mapstructure:"grid_columns"`
}

// TimeoutDuration parses the request timeout.
func (c APIConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("api.timeout", c.Timeout)
}

// TTLDuration parses the cache entry lifetime.
func (c ETagCacheConfig) TTLDuration() (time.Duration, error) {
	return parseDuration("api.etag_cache.ttl", c.TTL)
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, value)
	}
	return d, nil
}

// Path returns the config file location. WATCHMANIA_CONFIG overrides the default.
func Path() string {
	if p := os.Getenv("WATCHMANIA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "watchmania", "config.toml")
}

// Load reads configuration from .env, the config file and env. Env var overrides use prefix WATCHMANIA_.
func Load() (Config, error) {
	// .env is optional; it only seeds the process environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("WATCHMANIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; env and defaults still apply.
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("api.retries", d.API.Retries)
	v.SetDefault("api.compression", d.API.Compression)
	v.SetDefault("api.etag_cache.size", d.API.ETagCache.Size)
	v.SetDefault("api.etag_cache.ttl", d.API.ETagCache.TTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("metrics.address", d.Metrics.Address)
	v.SetDefault("sentry.dsn", d.Sentry.DSN)
	v.SetDefault("sentry.environment", d.Sentry.Environment)
	v.SetDefault("ui.grid_columns", d.UI.GridColumns)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			Timeout:     "30s",
			UserAgent:   "watchmania/1.0",
			Compression: true,
			ETagCache:   ETagCacheConfig{Size: 128, TTL: "10m"},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(os.Getenv("HOME"), ".local", "state", "watchmania", "watchmania.log"),
		},
		Sentry: SentryConfig{Environment: "production"},
		UI:     UIConfig{GridColumns: 2},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.API.BaseURL))
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url: %q is not an http(s) url", c.API.BaseURL)
	}
	if _, err := c.API.TimeoutDuration(); err != nil {
		return err
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api.retries: must not be negative, got %d", c.API.Retries)
	}
	if c.API.ETagCache.Size < 0 {
		return fmt.Errorf("api.etag_cache.size: must not be negative, got %d", c.API.ETagCache.Size)
	}
	if c.API.ETagCache.Size > 0 {
		if _, err := c.API.ETagCache.TTLDuration(); err != nil {
			return err
		}
	}
	if c.UI.GridColumns < 1 || c.UI.GridColumns > 6 {
		return fmt.Errorf("ui.grid_columns: must be between 1 and 6, got %d", c.UI.GridColumns)
	}
	return nil
}
