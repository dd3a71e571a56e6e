// Package metrics defines the prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analysis metrics
	AnalysisRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crosswatch_analysis_runs_total",
			Help: "Total number of correlation analysis runs",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crosswatch_analysis_duration_seconds",
			Help:    "Duration of a full correlation analysis run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CorrelationsFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crosswatch_correlations_total",
			Help: "Total correlation results found, by type",
		},
		[]string{"type"},
	)

	SignalsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crosswatch_signals_emitted_total",
			Help: "Total signals projected for alerting",
		},
	)

	// Delivery metrics
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crosswatch_webhook_deliveries_total",
			Help: "Total webhook delivery attempts, by outcome",
		},
		[]string{"status"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crosswatch_rate_limit_hits_total",
			Help: "Total number of rate limited requests",
		},
	)
)
