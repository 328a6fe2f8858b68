package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/payproc/internal/domain"
)

// Metrics holds all Prometheus metrics. It doubles as a processing
// observer so per-record outcomes feed the counters directly.
type Metrics struct {
	ActivitiesApplied  *prometheus.CounterVec
	ActivitiesRejected *prometheus.CounterVec
	MalformedRecords   prometheus.Counter
	AccountsLocked     prometheus.Counter

	BatchesSubmitted prometheus.Counter
	BatchSize        prometheus.Histogram

	ArchiveRuns     *prometheus.CounterVec
	ArchiveDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ActivitiesApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_activities_applied_total",
				Help: "Total activities applied, by kind",
			},
			[]string{"kind"},
		),
		ActivitiesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_activities_rejected_total",
				Help: "Total activities rejected, by kind and reason",
			},
			[]string{"kind", "reason"},
		),
		MalformedRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payproc_malformed_records_total",
			Help: "Total input records that could not be parsed",
		}),
		AccountsLocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payproc_accounts_locked_total",
			Help: "Total accounts locked by a chargeback",
		}),
		BatchesSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payproc_batches_submitted_total",
			Help: "Total activity batches submitted over the API",
		}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payproc_batch_size",
			Help:    "Number of records per submitted batch",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000},
		}),
		ArchiveRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_archive_runs_total",
				Help: "Total archive runs, by status",
			},
			[]string{"status"},
		),
		ArchiveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payproc_archive_duration_seconds",
			Help:    "Duration of archive runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// OnApplied implements ledger.Observer.
func (m *Metrics) OnApplied(activity domain.AccountActivity) {
	m.ActivitiesApplied.WithLabelValues(string(activity.Kind())).Inc()
	if activity.Kind() == domain.KindChargeback {
		m.AccountsLocked.Inc()
	}
}

// OnRejected implements ledger.Observer.
func (m *Metrics) OnRejected(activity domain.AccountActivity, reason error) {
	m.ActivitiesRejected.WithLabelValues(string(activity.Kind()), ReasonLabel(reason)).Inc()
}

// OnMalformed implements ledger.Observer.
func (m *Metrics) OnMalformed(error) {
	m.MalformedRecords.Inc()
}

// ReasonLabel maps rejection reasons to stable, low-cardinality label
// values.
func ReasonLabel(reason error) string {
	switch {
	case errors.Is(reason, domain.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(reason, domain.ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(reason, domain.ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(reason, domain.ErrWrongClient):
		return "wrong_client"
	case errors.Is(reason, domain.ErrWrongDisputeState):
		return "wrong_dispute_state"
	case errors.Is(reason, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(reason, domain.ErrAccountLocked):
		return "account_locked"
	case errors.Is(reason, domain.ErrMalformedRecord):
		return "malformed_record"
	default:
		return "other"
	}
}
