package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a backend call, used as the "outcome" label
const (
	OutcomeOK             = "ok"
	OutcomeRejected       = "rejected" // backend answered success=false
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

var (
	// ==================== HTTP METRICS ====================

	// HTTPRequestDuration tracks the duration of console page requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "Duration of console HTTP requests in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestsTotal counts console page requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Total number of console HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_http_requests_in_flight",
			Help: "Number of console HTTP requests currently being processed",
		},
	)

	// ==================== BACKEND CLIENT METRICS ====================

	// BackendCallsTotal counts calls to the shortener API
	BackendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_calls_total",
			Help: "Total number of calls to the shortener backend",
		},
		[]string{"operation", "outcome"},
	)

	// BackendCallDuration tracks shortener API latency
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Duration of calls to the shortener backend in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// ==================== FORM METRICS ====================

	// ValidationRejectsTotal counts submissions refused before any network call
	ValidationRejectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorten_validation_rejects_total",
			Help: "Total number of shorten submissions rejected by client-side validation",
		},
	)

	// RateLimitedRequestsTotal counts form posts refused by the limiter
	RateLimitedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_rate_limited_requests_total",
			Help: "Total number of console form posts rejected by the rate limiter",
		},
	)

	// FlashErrorsTotal counts flash store failures
	FlashErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flash_store_errors_total",
			Help: "Total number of flash notice store errors",
		},
		[]string{"operation"}, // push, pop
	)
)

// ObserveBackendCall records one backend call
func ObserveBackendCall(operation, outcome string, elapsed time.Duration) {
	BackendCallsTotal.WithLabelValues(operation, outcome).Inc()
	BackendCallDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordValidationReject increments the validation reject counter
func RecordValidationReject() {
	ValidationRejectsTotal.Inc()
}

// RecordRateLimited increments the rate-limited counter
func RecordRateLimited() {
	RateLimitedRequestsTotal.Inc()
}

// RecordFlashError increments the flash error counter for operation
func RecordFlashError(operation string) {
	FlashErrorsTotal.WithLabelValues(operation).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
