package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	advanceSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "entity_advance_steps",
		Help:    "The number of collision resolution steps taken by one advance.",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, maxAdvanceSteps},
	})

	landings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entity_landings_total",
		Help: "The number of times an entity became grounded.",
	})
)
