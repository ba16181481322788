// Package observability holds the Prometheus collectors for workout calculations.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"example.com/workout/internal/training"
)

var (
	summariesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout",
		Subsystem: "calculator",
		Name:      "summaries_total",
		Help:      "Number of training summaries computed, by workout kind.",
	}, []string{"kind"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout",
		Subsystem: "calculator",
		Name:      "rejected_readings_total",
		Help:      "Number of sensor readings rejected by the calculator, by reason.",
	}, []string{"reason"})

	caloriesHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout",
		Subsystem: "calculator",
		Name:      "calories_kcal",
		Help:      "Distribution of calories burned per session.",
		Buckets:   []float64{50, 100, 200, 400, 600, 800, 1200, 2000},
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(summariesCounter, rejectedCounter, caloriesHistogram)
}

// RecordSummary counts a computed summary.
func RecordSummary(s training.Summary) {
	summariesCounter.WithLabelValues(s.Label).Inc()
	caloriesHistogram.WithLabelValues(s.Label).Observe(s.CaloriesKcal)
}

// RecordRejected counts a reading the calculator refused.
func RecordRejected(err error) {
	if err == nil {
		return
	}
	rejectedCounter.WithLabelValues(training.ErrorType(err)).Inc()
}
