package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/watchmania/internal/client"
	"github.com/jask/watchmania/internal/config"
	"github.com/jask/watchmania/internal/logging"
	"github.com/jask/watchmania/internal/metrics"
	"github.com/jask/watchmania/internal/tui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg, "watchmania@"+version)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Close()

	api, err := client.NewClient(cfg.API, logger.Logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create API client")
		log.Fatalf("client: %v", err)
	}
	defer api.Close()

	if cfg.Metrics.Address != "" {
		srv := metrics.NewHTTPServer(cfg.Metrics.Address)
		go func() {
			logger.Info().Str("address", cfg.Metrics.Address).Msg("Serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("Metrics server shutdown")
			}
		}()
	}

	logger.Info().Str("base_url", cfg.API.BaseURL).Str("version", version).Msg("Starting Watch Mania")

	app := tui.New(ctx, api, cfg.UI, logger.Logger)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error().Err(err).Msg("UI exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
