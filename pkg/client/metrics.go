package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// Metrics for client requests, registered with the default registry.
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabreaich_client_requests_total",
			Help: "Total client requests by service, method and outcome",
		},
		[]string{"service", "method", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cabreaich_client_request_duration_seconds",
			Help:    "Duration of client requests on the wire",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)
)

// outcome labels a finished request: "success" or the error kind.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind := cerrors.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unknown"
}

func recordOutcome(service, method string, err error) {
	requestsTotal.WithLabelValues(service, method, outcome(err)).Inc()
}
