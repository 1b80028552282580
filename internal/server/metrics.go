package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rankpredictor_predictions_total",
		Help: "Total rank predictions served",
	})

	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rankpredictor_fetch_failures_total",
		Help: "Upstream match fetch failures by kind",
	}, []string{"kind"})

	predictDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rankpredictor_predict_duration_seconds",
		Help:    "End-to-end fetch+extract+predict latency",
		Buckets: prometheus.DefBuckets,
	})
)
