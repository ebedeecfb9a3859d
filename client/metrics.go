package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showcase_client",
			Name:      "requests_total",
			Help:      "API requests issued, by HTTP method.",
		},
		[]string{"method"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showcase_client",
			Name:      "errors_total",
			Help:      "Classified API failures, by error kind.",
		},
		[]string{"kind"},
	)

	retriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "showcase_client",
			Name:      "retries_total",
			Help:      "Retry attempts performed by the retry helper.",
		},
	)
)
