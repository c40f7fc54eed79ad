package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jask/watchmania/internal/metrics"
	"github.com/jask/watchmania/internal/models"
)

// AddToWatchlist posts the movie record to the user's watchlist. The response body is ignored.
func (c *client) AddToWatchlist(ctx context.Context, username string, movie models.Movie) (err error) {
	defer func() { metrics.ObserveCall(OpWatchlistAdd, err) }()

	username, err = models.NormalizeUsername(username)
	if err != nil {
		return err
	}
	body, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("encode movie %d: %w", movie.ID, err)
	}

	endpoint := watchlistPath(username)
	resp, err := c.do(ctx, OpWatchlistAdd, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	drainAndClose(resp)

	c.logger.Info().Str("username", username).Int64("movieID", movie.ID).Msg("Added movie to watchlist")
	return nil
}

// Watchlist fetches the user's watchlist ordered by movie id.
func (c *client) Watchlist(ctx context.Context, username string) (list models.Watchlist, err error) {
	defer func() { metrics.ObserveCall(OpWatchlistGet, err) }()

	username, err = models.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	endpoint := watchlistPath(username)
	resp, err := c.do(ctx, OpWatchlistGet, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(resp, endpoint, &list); err != nil {
		return nil, err
	}

	c.logger.Info().Str("username", username).Int("count", len(list)).Msg("Fetched watchlist")
	return list, nil
}

// RemoveFromWatchlist deletes one movie from the user's watchlist. The response body is ignored.
func (c *client) RemoveFromWatchlist(ctx context.Context, username string, movieID int64) (err error) {
	defer func() { metrics.ObserveCall(OpWatchlistDelete, err) }()

	username, err = models.NormalizeUsername(username)
	if err != nil {
		return err
	}

	endpoint := watchlistPath(username, movieID)
	resp, err := c.do(ctx, OpWatchlistDelete, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	drainAndClose(resp)

	c.logger.Info().Str("username", username).Int64("movieID", movieID).Msg("Removed movie from watchlist")
	return nil
}
