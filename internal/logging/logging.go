package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/jask/watchmania/internal/config"
)

// Logger bundles the configured zerolog logger with the resources behind it.
type Logger struct {
	zerolog.Logger

	file   *os.File
	sentry bool
}

// New builds a logger writing human-readable lines to cfg.Log.File. The terminal
// belongs to the UI, so nothing is written to stdout. When cfg.Sentry.DSN is set,
// error-level events are also sent to Sentry.
func New(cfg config.Config, release string) (*Logger, error) {
	out := io.Discard
	var file *os.File
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, file = f, f
	}

	l := &Logger{file: file}
	l.Logger = newLogger(out, cfg.Log.Level)

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     release,
		})
		if err != nil {
			l.Warn().Err(err).Msg("Sentry disabled")
		} else {
			l.sentry = true
			l.Logger = l.Hook(SentryHook{})
		}
	}
	return l, nil
}

// newLogger parses level, falling back to info with a warning.
func newLogger(out io.Writer, level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		} else {
			logger.Warn().Str("invalid_level", level).Msg("Invalid log level, using default 'info'")
		}
	}
	return logger.Level(lvl)
}

// Close flushes pending Sentry events and closes the log file.
func (l *Logger) Close() error {
	if l.sentry {
		sentry.Flush(2 * time.Second)
	}
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// SentryHook forwards error-level and fatal events to Sentry.
type SentryHook struct{}

// Run implements zerolog.Hook.
func (SentryHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.ErrorLevel || level == zerolog.NoLevel || level == zerolog.Disabled {
		return
	}
	sentryLevel := sentry.LevelError
	if level >= zerolog.FatalLevel {
		sentryLevel = sentry.LevelFatal
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel)
		sentry.CaptureMessage(msg)
	})
}
