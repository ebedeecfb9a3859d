package gallery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "showcase_client",
			Name:      "cache_hits_total",
			Help:      "Read-through loads served from the local cache before revalidation.",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "showcase_client",
			Name:      "cache_misses_total",
			Help:      "Read-through loads with no usable cached value.",
		},
	)

	rollbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "showcase_client",
			Name:      "reaction_rollbacks_total",
			Help:      "Optimistic reaction updates reverted after a failed submission.",
		},
	)
)
