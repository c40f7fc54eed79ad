package models

import (
	"strings"

	"github.com/jask/watchmania/internal/apperrors"
)

// NormalizeUsername trims surrounding whitespace. Any other text is accepted as-is.
func NormalizeUsername(s string) (string, error) {
	u := strings.TrimSpace(s)
	if u == "" {
		return "", apperrors.ErrEmptyUsername
	}
	return u, nil
}
