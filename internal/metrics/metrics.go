package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Calculator Metrics
var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCalculationsTotal,
			Help: HelpTextCalculationsTotal,
		},
		[]string{LabelKind, LabelOutcome},
	)

	ExpansionSteps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameExpansionSteps,
			Help:    HelpTextExpansionSteps,
			Buckets: ExpansionStepBuckets,
		},
	)

	UnknownItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUnknownItemsTotal,
			Help: HelpTextUnknownItemsTotal,
		},
	)

	ShoppingListSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameShoppingListSession,
			Help: HelpTextShoppingListSession,
		},
	)
)

// RecordCalculation counts one finished top-level calculation
func RecordCalculation(kind, outcome string) {
	CalculationsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordExpansionSteps observes the node count of one expansion
func RecordExpansionSteps(steps int) {
	ExpansionSteps.Observe(float64(steps))
}
