package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindLabel   = "kind"
	resultLabel = "result"

	entityKind = "entity"
	lightKind  = "light"
)

var (
	leafCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spatial_tree_leaves",
		Help: "The number of leaves of the last built tree.",
	})

	memberships = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spatial_tree_memberships",
		Help: "The number of leaf memberships of entities and lights.",
	}, []string{kindLabel})

	raycasts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_tree_raycasts_total",
		Help: "The number of ray casts.",
	}, []string{resultLabel})

	collisionQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spatial_tree_collision_queries_total",
		Help: "The number of collision queries.",
	})

	culledLeaves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spatial_tree_visible_leaves",
		Help:    "The number of leaves that passed one cull.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 7),
	})
)
