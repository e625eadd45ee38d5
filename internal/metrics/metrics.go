package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts calls to the ad server by operation
	// and resulting status class ("2xx", "4xx", "5xx", "error").
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adconsole_upstream_requests_total",
			Help: "Total number of requests issued to the upstream ad server",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestDuration measures round-trip latency per operation.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adconsole_upstream_request_duration_seconds",
			Help:    "Duration of upstream ad server requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// VASTParseFailures counts session responses that could not be parsed
	// as XML. Parse failures are recovered locally (the raw document view
	// remains usable), so this counter is the only place they surface.
	VASTParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adconsole_vast_parse_failures_total",
			Help: "Total number of VAST/VMAP documents that failed to parse",
		},
	)
)
