package client

import (
	"context"
	"net/http"

	"github.com/jask/watchmania/internal/metrics"
	"github.com/jask/watchmania/internal/models"
)

const popularMoviesPath = "/popular-movies"

// PopularMovies fetches the popular-movies list. A missing data field yields an empty list.
func (c *client) PopularMovies(ctx context.Context) (movies []models.Movie, err error) {
	defer func() { metrics.ObserveCall(OpPopularMovies, err) }()

	resp, err := c.do(ctx, OpPopularMovies, http.MethodGet, popularMoviesPath, nil)
	if err != nil {
		return nil, err
	}

	var env models.MoviesEnvelope
	if err := decodeJSON(resp, popularMoviesPath, &env); err != nil {
		return nil, err
	}

	c.logger.Info().Int("count", len(env.Data)).Msg("Fetched popular movies")
	return env.Data, nil
}
