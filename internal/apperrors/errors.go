package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by any ErrUnexpectedStatus carrying a 404.
var ErrNotFound = errors.New("resource not found")

// ErrEmptyUsername is returned before any request is made for a blank username.
var ErrEmptyUsername = errors.New("username is required")

// ErrUnexpectedStatus represents a non-2xx response from the watchlist API.
type ErrUnexpectedStatus struct {
	Method     string
	Endpoint   string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	if target == ErrNotFound {
		return e.StatusCode == http.StatusNotFound
	}
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// NewUnexpectedStatusError creates a new ErrUnexpectedStatus.
func NewUnexpectedStatusError(method, endpoint string, status int) *ErrUnexpectedStatus {
	return &ErrUnexpectedStatus{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: status,
	}
}

// ErrDecode is returned when a response body is not the expected JSON envelope.
type ErrDecode struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *ErrDecode) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ErrDecode) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrDecode) Is(target error) bool {
	_, ok := target.(*ErrDecode)
	return ok
}

// ErrInvalidMovieID is returned when a watchlist key cannot be used as a numeric movie id.
type ErrInvalidMovieID struct {
	Key string
}

// Error implements the error interface.
func (e *ErrInvalidMovieID) Error() string {
	return fmt.Sprintf("watchlist key %q is not a numeric movie id", e.Key)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidMovieID) Is(target error) bool {
	_, ok := target.(*ErrInvalidMovieID)
	return ok
}
