package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a route request.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeBadRequest  = "bad_request"
	OutcomeSearchLimit = "search_limit"
)

var (
	RouteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_route_requests_total",
		Help: "Total number of route requests, labelled by outcome.",
	}, []string{"outcome"})

	RouteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campus_route_duration_ms",
		Help:    "Shortest path computation latency in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
	})

	SettledNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campus_route_settled_nodes",
		Help:    "Number of nodes settled per route computation.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	MapReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_map_reloads_total",
		Help: "Total number of map rebuilds after a data change, labelled by status.",
	}, []string{"status"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campus_graph_nodes",
		Help: "Number of nodes of the currently served campus graph.",
	})

	GraphArcs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campus_graph_arcs",
		Help: "Number of arcs of the currently served campus graph.",
	})
)
