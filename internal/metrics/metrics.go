package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transcript_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Pipeline Metrics
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_fetches_total",
			Help: "Total number of transcript fetches by outcome (ok or error category)",
		},
		[]string{"outcome"},
	)

	FetchStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transcript_fetch_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	SegmentsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transcript_segments_returned",
			Help:    "Number of segments in successfully retrieved transcripts",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
	)
)
