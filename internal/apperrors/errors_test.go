package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrUnexpectedStatus_Is(t *testing.T) {
	err := NewUnexpectedStatusError("GET", "/watchlist/alice", 404)
	wrapped := fmt.Errorf("load watchlist: %w", err)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("expected 404 to match ErrNotFound")
	}
	if !errors.Is(wrapped, &ErrUnexpectedStatus{}) {
		t.Error("expected match against any ErrUnexpectedStatus")
	}

	other := NewUnexpectedStatusError("POST", "/watchlist/alice", 500)
	if errors.Is(other, ErrNotFound) {
		t.Error("500 must not match ErrNotFound")
	}
	if got := other.Error(); got != "POST /watchlist/alice: unexpected status 500 Internal Server Error" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestErrDecode_Unwrap(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := fmt.Errorf("popular movies: %w", &ErrDecode{Endpoint: "/popular-movies", Err: inner})

	if !errors.Is(err, inner) {
		t.Error("expected decode error to unwrap to the decoder error")
	}
	var de *ErrDecode
	if !errors.As(err, &de) || de.Endpoint != "/popular-movies" {
		t.Errorf("expected ErrDecode for /popular-movies, got %v", err)
	}
}

func TestErrInvalidMovieID(t *testing.T) {
	err := &ErrInvalidMovieID{Key: "x"}
	if !errors.Is(err, &ErrInvalidMovieID{}) {
		t.Error("expected type match")
	}
	if err.Error() != `watchlist key "x" is not a numeric movie id` {
		t.Errorf("unexpected message %q", err.Error())
	}
}
