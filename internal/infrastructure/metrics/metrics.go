package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Settlement metrics
	SettlementsRecorded *prometheus.CounterVec
	SettlementsReversed *prometheus.CounterVec
	SettlementsRejected *prometheus.CounterVec
	SettlementAmount    *prometheus.HistogramVec
	SettlementDuration  prometheus.Histogram

	// Entry metrics
	EntriesCreated *prometheus.CounterVec
	EntriesSettled *prometheus.CounterVec
	EntriesReopen  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SettlementsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_settlements_recorded_total",
				Help: "Total number of settlements recorded",
			},
			[]string{"kind"},
		),
		SettlementsReversed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_settlements_reversed_total",
				Help: "Total number of settlements reversed",
			},
			[]string{"kind"},
		),
		SettlementsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_settlements_rejected_total",
				Help: "Total number of settlements rejected for exceeding the outstanding balance",
			},
			[]string{"kind"},
		),
		SettlementAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contas_settlement_amount",
				Help:    "Settlement paid amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contas_settlement_duration_seconds",
			Help:    "Duration of settlement operations",
			Buckets: prometheus.DefBuckets,
		}),

		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_entries_created_total",
				Help: "Total number of ledger entries created",
			},
			[]string{"kind"},
		),
		EntriesSettled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_entries_settled_total",
				Help: "Total number of ledger entries driven to settled",
			},
			[]string{"kind"},
		),
		EntriesReopen: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_entries_reopened_total",
				Help: "Total number of settled entries reopened by a reversal",
			},
			[]string{"kind"},
		),
	}
}
