package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Pipeline metrics
	JobsProcessed    *prometheus.CounterVec
	JobsEnqueued     prometheus.Counter
	DispatchDuration prometheus.Histogram

	// Ledger metrics
	CreditsConsumed prometheus.Counter
	DenialsTotal    *prometheus.CounterVec
	ReconcileAlerts prometheus.Counter

	// Poller metrics
	JobsClaimed    prometheus.Counter
	ClaimsReleased prometheus.Counter
}

// NewMetrics registers on the given registerer so tests can use a private
// registry instead of fighting over the global one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		JobsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifygateway_jobs_processed_total",
				Help: "Notification jobs processed, by terminal outcome",
			},
			[]string{"outcome"},
		),
		JobsEnqueued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notifygateway_jobs_enqueued_total",
				Help: "Notification jobs accepted through the API",
			},
		),
		DispatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "notifygateway_dispatch_duration_seconds",
				Help:    "Provider dispatch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		CreditsConsumed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notifygateway_credits_consumed_total",
				Help: "Credits debited from tenant wallets",
			},
		),
		DenialsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifygateway_denials_total",
				Help: "Jobs denied before dispatch, by reason",
			},
			[]string{"reason"},
		),
		ReconcileAlerts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notifygateway_reconciliation_alerts_total",
				Help: "Jobs sent without a matching debit",
			},
		),
		JobsClaimed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notifygateway_jobs_claimed_total",
				Help: "Jobs claimed for dispatch by the poller",
			},
		),
		ClaimsReleased: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notifygateway_claims_released_total",
				Help: "Expired claims returned to the scheduled pool",
			},
		),
	}
}
