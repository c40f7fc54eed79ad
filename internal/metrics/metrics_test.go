package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestObserveCall(t *testing.T) {
	beforeOK := getCounterVecValue(APICallsTotal, "popular_movies", OutcomeSuccess)
	beforeErr := getCounterVecValue(APICallsTotal, "popular_movies", OutcomeError)

	ObserveCall("popular_movies", nil)
	ObserveCall("popular_movies", errors.New("boom"))
	ObserveCall("popular_movies", errors.New("boom"))

	if got := getCounterVecValue(APICallsTotal, "popular_movies", OutcomeSuccess) - beforeOK; got != 1 {
		t.Errorf("expected 1 success, got %.0f", got)
	}
	if got := getCounterVecValue(APICallsTotal, "popular_movies", OutcomeError) - beforeErr; got != 2 {
		t.Errorf("expected 2 errors, got %.0f", got)
	}
}

func TestInstrumentRoundTripper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	before200 := getCounterVecValue(HTTPRequestsTotal, "200", "get")
	before404 := getCounterVecValue(HTTPRequestsTotal, "404", "delete")

	client := &http.Client{Transport: InstrumentRoundTripper(nil)}
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		req, err := http.NewRequest(method, server.URL, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("%s failed: %v", method, err)
		}
		resp.Body.Close()
	}

	if got := getCounterVecValue(HTTPRequestsTotal, "200", "get") - before200; got != 1 {
		t.Errorf("expected one GET 200, got %.0f", got)
	}
	if got := getCounterVecValue(HTTPRequestsTotal, "404", "delete") - before404; got != 1 {
		t.Errorf("expected one DELETE 404, got %.0f", got)
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}
