package polymarket

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bimakw/polywallet/internal/domain/entities"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polywallet_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"endpoint", "status"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polywallet_upstream_request_duration_seconds",
			Help:    "Upstream API request duration in seconds",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)
)

func observeRequest(endpoint entities.Endpoint, err error, d time.Duration) {
	upstreamRequestsTotal.WithLabelValues(string(endpoint), requestStatus(err)).Inc()
	upstreamRequestDuration.WithLabelValues(string(endpoint)).Observe(d.Seconds())
}

// requestStatus maps a request outcome to a low-cardinality label
func requestStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "error"
}
