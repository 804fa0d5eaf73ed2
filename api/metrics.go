/*
metrics.go - Prometheus metrics for the API layer

PURPOSE:
  Operational counters for the engine's HTTP surface. Business metrics
  track the reward economy (redemptions, awards, refused redemptions);
  the request counter covers overall traffic.

EXPOSITION:
  Registered via promauto on the default registry and served at /metrics
  by the router.
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the API-layer Prometheus collectors.
type Metrics struct {
	requestsTotal       *prometheus.CounterVec
	redemptionsTotal    prometheus.Counter
	awardsTotal         prometheus.Counter
	insufficientBalance prometheus.Counter
	weightSwapsTotal    prometheus.Counter
}

// NewMetrics registers the collectors on the given registerer. Pass nil
// for the default registry; tests pass their own to avoid duplicate
// registration across cases.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perform",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status class.",
		}, []string{"route", "status"}),
		redemptionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "perform",
			Subsystem: "rewards",
			Name:      "redemptions_total",
			Help:      "Successful reward redemptions.",
		}),
		awardsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "perform",
			Subsystem: "rewards",
			Name:      "awards_total",
			Help:      "Top-rank award transactions issued.",
		}),
		insufficientBalance: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "perform",
			Subsystem: "rewards",
			Name:      "insufficient_balance_total",
			Help:      "Redemptions refused for insufficient balance.",
		}),
		weightSwapsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "perform",
			Subsystem: "scoring",
			Name:      "weight_swaps_total",
			Help:      "Weight configuration replacements.",
		}),
	}
}
