package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"operation"},
	)

	cartPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_persist_failures_total",
			Help: "Total number of cart slot writes that failed",
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_sessions",
			Help: "Number of cart sessions held in memory",
		},
	)
)
