package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Movie is a single entry of the popular-movies list and the value shape of a watchlist entry.
type Movie struct {
	ID         int64
	Title      string
	PosterPath string

	// raw holds the record exactly as the API sent it so that posting it back
	// preserves fields the client does not model.
	raw json.RawMessage
}

type movieWire struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Title      string          `json:"title"`
	PosterPath string          `json:"poster_path"`
}

// UnmarshalJSON accepts numeric or string ids and keeps a copy of the raw record.
// An id that is not an integer decodes as 0; the raw record still carries it.
func (m *Movie) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var w movieWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = Movie{
		ID:         parseID(w.ID),
		Title:      w.Title,
		PosterPath: w.PosterPath,
		raw:        append(json.RawMessage(nil), bytes.TrimSpace(data)...),
	}
	return nil
}

// MarshalJSON returns the decoded record unchanged when the movie came from the API.
func (m Movie) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	return json.Marshal(struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	}{m.ID, m.Title, m.PosterPath})
}

func parseID(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0
		}
		return id
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if id, err := n.Int64(); err == nil {
		return id
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// MoviesEnvelope is the body of GET /popular-movies.
type MoviesEnvelope struct {
	Data []Movie `json:"data"`
}
