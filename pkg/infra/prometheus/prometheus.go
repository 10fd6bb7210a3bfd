package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Upstream LLM calls dominate, so the
	// upper buckets stretch well past typical HTTP service latencies.
	latencyBuckets = []float64{
		25, 50, 100,
		250, 500, 1000,
		2500, 5000, 10000,
		30000, 60000, 120000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_requests_total",
			Help: "Total number of completion requests processed",
		},
		[]string{"provider", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_request_latency_ms",
			Help:    "End to end completion request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"provider"},
	)

	RedactedEntities = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_redacted_entities_total",
			Help: "Total number of PII values replaced by placeholder tokens",
		},
		[]string{"entity_type"},
	)

	HTTPRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_http_requests_total",
			Help: "Total number of HTTP requests by route and status class",
		},
		[]string{"method", "path", "status"},
	)

	RecognizerFailures = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_recognizer_failures_total",
			Help: "Total number of failed entity recognizer calls",
		},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
