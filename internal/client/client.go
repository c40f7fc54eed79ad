package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/watchmania/internal/apperrors"
	"github.com/jask/watchmania/internal/config"
	"github.com/jask/watchmania/internal/metrics"
	"github.com/jask/watchmania/internal/models"
)

// Operation names used for logging and metrics.
const (
	OpPopularMovies   = "popular_movies"
	OpWatchlistGet    = "watchlist_get"
	OpWatchlistAdd    = "watchlist_add"
	OpWatchlistDelete = "watchlist_delete"
)

// Client defines the calls the screens make against the watchlist API.
type Client interface {
	PopularMovies(ctx context.Context) ([]models.Movie, error)
	AddToWatchlist(ctx context.Context, username string, movie models.Movie) error
	Watchlist(ctx context.Context, username string) (models.Watchlist, error)
	RemoveFromWatchlist(ctx context.Context, username string, movieID int64) error

	// Close releases idle connections.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	retry      retrypolicy.RetryPolicy[*http.Response]
	logger     zerolog.Logger
}

// NewClient builds a Client from the api section of the configuration.
func NewClient(cfg config.APIConfig, logger zerolog.Logger) (Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		logger.Warn().Err(err).Str("timeout", cfg.Timeout).Msg("Invalid timeout duration, using default 30s")
		timeout = 30 * time.Second
	}

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings.
	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Compression {
		rt = newCompressionTransport(rt)
	}
	rt = metrics.InstrumentRoundTripper(rt)
	if cfg.ETagCache.Size > 0 {
		ttl, err := cfg.ETagCache.TTLDuration()
		if err != nil {
			logger.Warn().Err(err).Str("ttl", cfg.ETagCache.TTL).Msg("Invalid etag cache ttl, using default 10m")
			ttl = 10 * time.Minute
		}
		rt = newETagTransport(rt, cfg.ETagCache.Size, ttl)
	}

	c := &client{
		httpClient: &http.Client{Timeout: timeout, Transport: rt},
		baseURL:    strings.TrimRight(base.String(), "/"),
		userAgent:  cfg.UserAgent,
		logger:     logger.With().Str("component", "client").Logger(),
	}
	if cfg.Retries > 0 {
		c.retry = newRetryPolicy(cfg.Retries)
	}
	return c, nil
}

// Close releases idle keep-alive connections.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// newRetryPolicy retries connection errors, 429 and 5xx (except 501) with exponential backoff.
func newRetryPolicy(maxRetries int) retrypolicy.RetryPolicy[*http.Response] {
	return retrypolicy.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled)
			}
			return resp != nil && retryableStatus(resp.StatusCode)
		}).
		WithMaxRetries(maxRetries).
		WithBackoff(250*time.Millisecond, 4*time.Second).
		ReturnLastFailure().
		Build()
}

func retryableStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code != http.StatusNotImplemented
}

// do sends one API request and returns the response when the status is 2xx.
// body is re-read from the start on every attempt.
func (c *client) do(ctx context.Context, op, method, endpoint string, body []byte) (*http.Response, error) {
	requestID := uuid.NewString()
	logger := c.logger.With().
		Str("op", op).
		Str("method", method).
		Str("endpoint", endpoint).
		Str("requestID", requestID).
		Logger()

	attempt := 0
	send := func() (*http.Response, error) {
		attempt++
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, rdr)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-Id", requestID)
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		logger.Debug().Int("attempt", attempt).Msg("Sending request")
		resp, err := c.httpClient.Do(req)
		if err == nil && c.retry != nil && retryableStatus(resp.StatusCode) {
			// A retried response is discarded, so its connection must not stay pinned.
			bufferBody(resp)
		}
		return resp, err
	}

	var (
		resp *http.Response
		err  error
	)
	if c.retry == nil {
		resp, err = send()
	} else {
		resp, err = failsafe.With[*http.Response](c.retry).WithContext(ctx).Get(send)
	}
	if err != nil {
		logger.Warn().Err(err).Int("attempts", attempt).Msg("Request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp)
		statusErr := apperrors.NewUnexpectedStatusError(method, endpoint, resp.StatusCode)
		logger.Warn().Int("status", resp.StatusCode).Int("attempts", attempt).Msg("Unexpected status code")
		return nil, statusErr
	}

	logger.Debug().Int("status", resp.StatusCode).Int("attempts", attempt).Msg("Request succeeded")
	return resp, nil
}

func bufferBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	data, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
}

func drainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// watchlistPath escapes the username as a single path segment.
func watchlistPath(username string, movieID ...int64) string {
	p := "/watchlist/" + url.PathEscape(username)
	for _, id := range movieID {
		p += fmt.Sprintf("/%d", id)
	}
	return p
}
