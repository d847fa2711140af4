// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_http_requests_total",
		Help: "HTTP requests served, labelled by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calendar_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	EventMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_event_mutations_total",
		Help: "Successful event writes, labelled by operation (create, update, delete).",
	}, []string{"op"})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_validation_failures_total",
		Help: "Rejected event payloads, labelled by the first error kind.",
	}, []string{"kind"})
)
