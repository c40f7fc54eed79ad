package client

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/jask/watchmania/internal/apperrors"
)

// decodeJSON reads the response body into v and closes it. An empty body leaves v untouched.
func decodeJSON(resp *http.Response, endpoint string, v any) error {
	defer drainAndClose(resp)

	body, err := newUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return &apperrors.ErrDecode{Endpoint: endpoint, Err: err}
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &apperrors.ErrDecode{Endpoint: endpoint, Err: err}
	}
	return nil
}

// newUTF8Reader converts bodies whose Content-Type names a charset other than UTF-8.
func newUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	switch strings.ToLower(strings.TrimSpace(params["charset"])) {
	case "", "utf-8", "utf8":
		return body, nil
	}
	return charset.NewReader(body, contentType)
}
