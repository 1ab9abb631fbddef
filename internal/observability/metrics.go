package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbtraders_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gbtraders_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// DocStoreOperationDuration records document store latency by operation, collection and outcome.
	DocStoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gbtraders_docstore_operation_duration_seconds",
		Help:    "Document store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection", "outcome"})

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbtraders_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"route"})

	// CleanupRunsTotal counts daily cleanup runs by trigger (http, cron, cli) and outcome.
	CleanupRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbtraders_cleanup_runs_total",
		Help: "Total number of expired-plan cleanup runs",
	}, []string{"trigger", "outcome"})

	// PlansExpiredTotal counts plans transitioned to expired.
	PlansExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gbtraders_plans_expired_total",
		Help: "Total number of token plans expired by cleanup",
	})

	// BlobDeletesTotal counts object storage deletions by asset type and outcome.
	BlobDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbtraders_blob_deletes_total",
		Help: "Total number of object storage deletions",
	}, []string{"asset_type", "outcome"})
)
