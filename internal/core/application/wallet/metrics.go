package wallet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "hdwallet"

type metrics struct {
	txsSent        *prometheus.CounterVec
	cacheRefreshes prometheus.Counter
	ledgerErrors   prometheus.Counter
	unlockFailures prometheus.Counter
	autoLocks      prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		txsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "txs_sent_total",
			Help:      "Number of transactions sent to the ledger, by note.",
		}, []string{"note"}),
		cacheRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_refreshes_total",
			Help:      "Number of balance cache refreshes.",
		}),
		ledgerErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ledger_errors_total",
			Help:      "Number of failed cache refreshes.",
		}),
		unlockFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unlock_failures_total",
			Help:      "Number of rejected unlock attempts.",
		}),
		autoLocks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "auto_locks_total",
			Help:      "Number of accounts locked after inactivity.",
		}),
	}
}
