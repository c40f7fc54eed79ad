package client

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jask/watchmania/internal/metrics"
)

// Result label values for metrics.ETagCacheTotal.
const (
	etagHit   = "hit"
	etagMiss  = "miss"
	etagStore = "store"
)

// etagTransport revalidates GET responses with If-None-Match. The server is
// still asked every time; a 304 is answered from the stored body.
type etagTransport struct {
	next  http.RoundTripper
	cache *expirable.LRU[string, cachedResponse]
}

type cachedResponse struct {
	etag   string
	header http.Header
	body   []byte
}

func newETagTransport(next http.RoundTripper, size int, ttl time.Duration) *etagTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &etagTransport{
		next:  next,
		cache: expirable.NewLRU[string, cachedResponse](size, nil, ttl),
	}
}

func (t *etagTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := cacheKey(req)
	if req.Method != http.MethodGet {
		resp, err := t.next.RoundTrip(req)
		if err == nil {
			t.invalidate(key)
		}
		return resp, err
	}

	cached, ok := t.cache.Get(key)
	if ok && req.Header.Get("If-None-Match") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("If-None-Match", cached.etag)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if ok && resp.StatusCode == http.StatusNotModified {
		drainAndClose(resp)
		metrics.ETagCacheTotal.WithLabelValues(etagHit).Inc()
		return cached.response(req, resp), nil
	}
	metrics.ETagCacheTotal.WithLabelValues(etagMiss).Inc()

	etag := resp.Header.Get("ETag")
	if resp.StatusCode != http.StatusOK || etag == "" {
		return resp, nil
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	t.cache.Add(key, cachedResponse{etag: etag, header: resp.Header.Clone(), body: body})
	metrics.ETagCacheTotal.WithLabelValues(etagStore).Inc()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// invalidate drops the written resource and every cached ancestor path of it,
// so a POST or DELETE under /watchlist/alice purges GET /watchlist/alice.
func (t *etagTransport) invalidate(written string) {
	written, _, _ = strings.Cut(written, "?")
	for _, key := range t.cache.Keys() {
		path, _, _ := strings.Cut(key, "?")
		if path == written || isAncestor(path, written) || isAncestor(written, path) {
			t.cache.Remove(key)
		}
	}
}

func isAncestor(parent, child string) bool {
	return len(child) > len(parent) && strings.HasPrefix(child, parent) && child[len(parent)] == '/'
}

func (c cachedResponse) response(req *http.Request, notModified *http.Response) *http.Response {
	header := c.header.Clone()
	header.Set("Content-Length", strconv.Itoa(len(c.body)))
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         notModified.Proto,
		ProtoMajor:    notModified.ProtoMajor,
		ProtoMinor:    notModified.ProtoMinor,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(c.body)),
		ContentLength: int64(len(c.body)),
		Request:       req,
	}
}

func cacheKey(req *http.Request) string {
	u := *req.URL
	u.Fragment = ""
	return u.String()
}
