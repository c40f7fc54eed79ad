package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jask/watchmania/internal/apperrors"
)

// WatchlistEntry is one movie saved under a username, keyed by the id the server used.
type WatchlistEntry struct {
	Key   string
	Movie Movie
}

// MovieID coerces the entry key to the numeric id used in delete requests.
func (e WatchlistEntry) MovieID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(e.Key), 10, 64)
	if err != nil {
		return 0, &apperrors.ErrInvalidMovieID{Key: e.Key}
	}
	return id, nil
}

// Watchlist is a user's watchlist in display order.
type Watchlist []WatchlistEntry

// UnmarshalJSON decodes the server mapping and orders it by numeric key.
// A missing, null or empty-array data field is an empty watchlist.
func (w *Watchlist) UnmarshalJSON(data []byte) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	switch raw := bytes.TrimSpace(env.Data); {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		*w = Watchlist{}
		return nil
	case raw[0] == '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			return fmt.Errorf("watchlist data: expected an object, got an array of %d", len(list))
		}
		*w = Watchlist{}
		return nil
	}
	var m map[string]Movie
	if err := json.Unmarshal(env.Data, &m); err != nil {
		return err
	}
	*w = NewWatchlist(m)
	return nil
}

// NewWatchlist orders a key -> movie mapping. Numeric keys come first in ascending
// order, anything else follows lexicographically.
func NewWatchlist(m map[string]Movie) Watchlist {
	out := make(Watchlist, 0, len(m))
	for k, mv := range m {
		out = append(out, WatchlistEntry{Key: k, Movie: mv})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyLess(out[i].Key, out[j].Key)
	})
	return out
}

func keyLess(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}

// Titles returns entry titles in order.
func (w Watchlist) Titles() []string {
	out := make([]string, len(w))
	for i, e := range w {
		out[i] = e.Movie.Title
	}
	return out
}
