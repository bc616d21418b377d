package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linprog_solves_total",
		Help: "Solve requests by method and outcome",
	}, []string{"method", "status"})

	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linprog_solve_duration_seconds",
		Help:    "Time spent inside the solver",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"method"})

	simplexIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linprog_simplex_iterations",
		Help:    "Pivots per successful simplex solve",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
	})
)
