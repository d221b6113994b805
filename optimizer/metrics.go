package optimizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// These collectors are purely observational: nothing in this package reads
// them back, and disabling metrics collection entirely must not change the
// behavior of any optimizer.
var (
	peekTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submod_peek_total",
		Help: "Total number of candidate evaluations started by optimizers, one per candidate per sieve or ensemble member, including ones that end without an objective peek.",
	}, []string{"optimizer"})

	updateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submod_update_total",
		Help: "Total number of objective update calls committed by optimizers.",
	}, []string{"optimizer"})

	sieveCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "submod_sieve_count",
		Help: "Current number of live sieves or ensemble members.",
	}, []string{"optimizer"})

	offerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "submod_offer_duration_seconds",
		Help:    "Latency of a single Offer or Fit call.",
		Buckets: prometheus.DefBuckets,
	}, []string{"optimizer"})
)
