package rank

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rankingsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homerank_rankings_computed_total",
		Help: "Completed ranking runs, by weight method.",
	}, []string{"method"})

	inconsistentJudgments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homerank_inconsistent_judgments_total",
		Help: "Ranking runs whose consistency ratio crossed the 0.10 bound.",
	})

	rankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "homerank_ranking_duration_seconds",
		Help:    "End-to-end duration of one ranking run.",
		Buckets: prometheus.DefBuckets,
	})

	airQualityFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homerank_airquality_lookup_failures_total",
		Help: "Air-quality lookups that fell back to the neutral score.",
	})
)
