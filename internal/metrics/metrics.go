package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "group_sync"

var (
	// PassesTotal считает проходы синхронизации по итоговому статусу.
	PassesTotal = MustRegisterCounterVec(namespace, "reconcile", "passes_total",
		"Number of reconciliation passes by final status.", "status")

	// PassDuration измеряет длительность прохода синхронизации.
	PassDuration = MustRegisterHistogramVec(namespace, "reconcile", "pass_duration_seconds",
		"Duration of reconciliation passes.", prometheus.DefBuckets, "status")

	// ActionsTotal считает действия над Outline по типу и результату.
	ActionsTotal = MustRegisterCounterVec(namespace, "apply", "actions_total",
		"Number of actions applied to the target system.", "kind", "outcome")

	// WarningsTotal считает предупреждения, не прерывающие проход.
	WarningsTotal = MustRegisterCounterVec(namespace, "reconcile", "warnings_total",
		"Number of non-fatal reconciliation warnings.", "kind")

	// LastSuccess хранит время последнего успешного прохода (unix seconds).
	LastSuccess = MustRegisterGauge(namespace, "reconcile", "last_success_timestamp_seconds",
		"Unix time of the last successful reconciliation pass.")
)

// Метки предупреждений.
const (
	WarningDataIntegrity = "data_integrity"
	WarningUnmatchedUser = "unmatched_user"
	WarningAmbiguousUser = "ambiguous_user"
)

// MustRegisterCounterVec creates and registers a counter vector.
// Used from package-level variable initialisers; panics on duplicate registration.
func MustRegisterCounterVec(namespace, component, name, help string, labelNames ...string) *prometheus.CounterVec {
	m := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
	}, labelNames)
	prometheus.MustRegister(m)
	return m
}

// MustRegisterGauge creates and registers a gauge.
// Used from package-level variable initialisers; panics on duplicate registration.
func MustRegisterGauge(namespace, component, name, help string) prometheus.Gauge {
	m := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
	})
	prometheus.MustRegister(m)
	return m
}

// MustRegisterHistogramVec creates and registers a histogram vector.
// Used from package-level variable initialisers; panics on duplicate registration.
func MustRegisterHistogramVec(namespace, component, name, help string, buckets []float64, labelNames ...string) *prometheus.HistogramVec {
	m := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labelNames)
	prometheus.MustRegister(m)
	return m
}
