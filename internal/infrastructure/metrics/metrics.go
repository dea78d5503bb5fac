// Package metrics defines the Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Reconciliations prometheus.Counter
	Findings        *prometheus.CounterVec
	Extractions     *prometheus.CounterVec
	Uploads         prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		Reconciliations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pactproof_reconciliations_total",
			Help: "Total number of reconciliation runs performed",
		}),
		Findings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pactproof_findings_total",
			Help: "Total findings produced, partitioned by severity",
		}, []string{"severity"}),
		Extractions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pactproof_extractions_total",
			Help: "Total document extractions, partitioned by document type",
		}, []string{"doc_type"}),
		Uploads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pactproof_uploads_total",
			Help: "Total number of uploaded documents",
		}),
	}
}

// ObserveReconciliation records one reconciliation run and its finding counts
func (m *Metrics) ObserveReconciliation(majorCount, minorCount int) {
	m.Reconciliations.Inc()
	m.Findings.WithLabelValues("MAJOR").Add(float64(majorCount))
	m.Findings.WithLabelValues("MINOR").Add(float64(minorCount))
}
