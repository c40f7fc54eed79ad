package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for APICallsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// HTTP transport metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchmania_http_requests_total",
			Help: "Total number of HTTP requests sent to the watchlist API.",
		},
		[]string{"code", "method"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "watchmania_http_request_duration_seconds",
			Help:    "Latency of HTTP requests sent to the watchlist API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// API operation metrics
var (
	APICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchmania_api_calls_total",
			Help: "Total number of watchlist API operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	ETagCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchmania_etag_cache_total",
			Help: "ETag revalidation cache activity.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		APICallsTotal,
		ETagCacheTotal,
	)
}

// ObserveCall records the outcome of one API operation.
func ObserveCall(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	APICallsTotal.WithLabelValues(operation, outcome).Inc()
}

// InstrumentRoundTripper wraps next with request count and latency instrumentation.
func InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(HTTPRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(HTTPRequestDuration, next),
	)
}
