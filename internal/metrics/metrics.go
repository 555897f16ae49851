// Package metrics exposes Prometheus instrumentation for the storefront:
// checkout outcomes, recorded events, and live inventory listeners.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutsTotal counts checkout attempts by outcome:
	// "ok", "empty_cart", "insufficient_stock", "not_found", "error".
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Total number of checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	// OrderValue observes the total of each successful order.
	OrderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_value",
			Help:    "Distribution of successful order totals",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		},
	)

	// EventsRecorded counts analytics events by type.
	EventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_recorded_total",
			Help: "Total number of analytics events recorded by type",
		},
		[]string{"type"},
	)

	// InventoryListeners tracks currently connected inventory feed clients.
	InventoryListeners = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_inventory_listeners",
			Help: "Number of currently connected inventory feed listeners",
		},
	)

	// RecommendDuration observes similarity-engine latency. The vector
	// space is rebuilt on every call, so this grows with catalog size.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_recommend_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
