package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_added_total",
		Help: "Total number of products added to the catalog",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "Total number of products deleted from the catalog",
	})

	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of lines added to the cart",
	})

	CartItemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_removed_total",
		Help: "Total number of lines removed from the cart",
	})

	CheckoutsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_started_total",
		Help: "Total number of checkouts begun",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders committed to the ledger",
	})

	SettlementFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_failed_total",
		Help: "Total number of failed payment settlements",
	})

	SettlementLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_latency_seconds",
		Help:    "Latency of payment settlement",
		Buckets: prometheus.DefBuckets,
	})

	WhatsAppHandoffsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whatsapp_handoffs_total",
		Help: "Total number of orders handed off to the messaging channel",
	})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "login_failures_total",
		Help: "Total number of rejected login attempts",
	})

	SnapshotWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_writes_total",
		Help: "Total number of snapshot slot writes",
	}, []string{"slot"})

	SnapshotWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_write_failures_total",
		Help: "Total number of failed snapshot slot writes",
	}, []string{"slot"})

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
