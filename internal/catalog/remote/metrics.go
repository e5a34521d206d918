package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbackServed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_catalog_fallback_total",
		Help: "Total number of catalog reads answered from the bundled dataset",
	},
	[]string{"endpoint"},
)
