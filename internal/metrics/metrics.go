package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeNotConfigured = "not_configured"
	OutcomeUpstreamError = "upstream_error"
	OutcomeTransportErr  = "transport_error"
)

var (
	RelaySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_submissions_total",
			Help: "Total number of applications relayed, by outcome",
		},
		[]string{"outcome", "institution"},
	)

	RelayUpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_upstream_duration_seconds",
			Help:    "Duration of the outbound webhook call in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status_class"},
	)

	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of submit attempts on the HTML form, by outcome",
		},
		[]string{"outcome", "institution"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_rate_limited_total",
			Help: "Total number of submissions rejected by the rate limiter",
		},
	)
)

// StatusClass buckets an HTTP status code as "2xx", "4xx", etc.
// Zero means no response was received.
func StatusClass(code int) string {
	if code <= 0 {
		return "none"
	}
	return fmt.Sprintf("%dxx", code/100)
}
