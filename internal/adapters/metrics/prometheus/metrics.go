// Package prometheus records operation and quota metrics. A CLI process is
// short-lived, so the registry is written to a node_exporter textfile
// instead of being scraped.
package prometheus

import (
	"fmt"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tenderlogic"

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	consumed   *prometheus.GaugeVec
	ceiling    *prometheus.GaugeVec
}

var _ ports.Metrics = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Oracle-backed operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of oracle-backed operations.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"operation"}),
		consumed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quota_consumed",
			Help:      "Analyses consumed in the current period.",
		}, []string{"account", "tier"}),
		ceiling: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quota_ceiling",
			Help:      "Analyses allowed per period. Absent for unlimited tiers.",
		}, []string{"account", "tier"}),
	}
	m.registry.MustRegister(m.operations, m.duration, m.consumed, m.ceiling)

	return m
}

func (m *Metrics) ObserveOperation(operation string, outcome ports.Outcome, elapsed time.Duration) {
	m.operations.WithLabelValues(operation, string(outcome)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) SetQuota(accountID string, tier string, consumed int, ceiling *int) {
	m.consumed.WithLabelValues(accountID, tier).Set(float64(consumed))
	if ceiling == nil {
		m.ceiling.DeleteLabelValues(accountID, tier)
		return
	}
	m.ceiling.WithLabelValues(accountID, tier).Set(float64(*ceiling))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile atomically replaces path with the current metric values.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
