package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookforge_ai_requests_total",
			Help: "Total number of requests to generative services, partitioned by kind and outcome.",
		},
		[]string{"kind", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookforge_ai_request_duration_seconds",
			Help:    "Duration of generative service requests.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"kind"},
	)
	aiTokensUsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookforge_ai_tokens_used_total",
			Help: "Total number of AI tokens used for text generation.",
		},
	)
	artifactsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookforge_artifacts_created_total",
			Help: "Total number of artifact versions created, partitioned by subject kind.",
		},
		[]string{"subject_kind", "kind"},
	)
)
