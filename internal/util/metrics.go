package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_completed_total",
		Help: "Total number of finalized POS sales",
	}, []string{"payment_method"})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_failed_total",
		Help: "Total number of rejected or failed checkouts",
	}, []string{"reason"})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_latency_seconds",
		Help:    "Latency of checkout finalization including order persistence",
		Buckets: prometheus.DefBuckets,
	})

	FiadoSchedulesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_fiado_schedules_generated_total",
		Help: "Total number of installment schedules generated or regenerated",
	})

	SessionsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sessions_opened_total",
		Help: "Total number of POS sale sessions opened",
	})

	SessionsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sessions_expired_total",
		Help: "Total number of idle POS sessions swept by TTL",
	})

	QuickRegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_quick_registrations_total",
		Help: "Total number of customers created via quick registration",
	})

	QuickRegistrationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_quick_registrations_rejected_total",
		Help: "Total number of rejected quick registrations",
	}, []string{"reason"})

	ReceiptsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_receipts_sent_total",
		Help: "Total number of receipts handed to the messaging channel",
	})

	ReceiptsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_receipts_skipped_total",
		Help: "Total number of receipts skipped for lack of a phone number",
	})

	CatalogCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_catalog_cache_requests_total",
		Help: "Catalog lookups by cache outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
