package client

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nebula_client",
			Name:      "requests_total",
			Help:      "API requests by method and status class.",
		},
		[]string{"method", "status"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nebula_client",
			Name:      "request_failures_total",
			Help:      "Requests that failed before an HTTP status was received.",
		},
		[]string{"kind"},
	)
)

// statusLabel collapses a status code to its class ("2xx", "4xx", ...) to
// keep label cardinality small.
func statusLabel(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
