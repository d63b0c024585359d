// Package monitoring provides Prometheus metrics for the pantry core.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the operation counters for the inventory engine and the
// recipe pipeline.
type Metrics struct {
	itemOperations *prometheus.CounterVec
	generations    *prometheus.CounterVec
	generationTime prometheus.Histogram
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		itemOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_item_operations_total",
				Help: "Total inventory operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_recipe_generations_total",
				Help: "Total recipe generation runs by outcome",
			},
			[]string{"outcome"},
		),
		generationTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pantry_recipe_generation_duration_seconds",
				Help:    "Recipe generation round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.itemOperations, m.generations, m.generationTime)
	return m
}

// NewTestMetrics creates collectors on a throwaway registry, for tests.
func NewTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// ItemCreated counts a successful insert.
func (m *Metrics) ItemCreated() {
	m.itemOperations.WithLabelValues("create", "success").Inc()
}

// ItemMerged counts a successful quantity merge.
func (m *Metrics) ItemMerged() {
	m.itemOperations.WithLabelValues("merge", "success").Inc()
}

// ItemDeleted counts a successful delete.
func (m *Metrics) ItemDeleted() {
	m.itemOperations.WithLabelValues("delete", "success").Inc()
}

// ItemWriteFailed counts a failed store write.
func (m *Metrics) ItemWriteFailed() {
	m.itemOperations.WithLabelValues("write", "failure").Inc()
}

// GenerationSucceeded counts a completed pipeline run.
func (m *Metrics) GenerationSucceeded(elapsed time.Duration) {
	m.generations.WithLabelValues("success").Inc()
	m.generationTime.Observe(elapsed.Seconds())
}

// GenerationFailed counts a failed pipeline run.
func (m *Metrics) GenerationFailed() {
	m.generations.WithLabelValues("failure").Inc()
}
