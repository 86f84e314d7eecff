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

	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRequestsRejected,
			Help: HelpTextRequestsRejected,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Round engine metrics
var (
	RoundsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsSettled,
			Help: HelpTextRoundsSettled,
		},
		[]string{LabelGameType, LabelOutcome},
	)

	RoundsDemoted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsDemoted,
			Help: HelpTextRoundsDemoted,
		},
		[]string{LabelGameType, LabelReason},
	)

	SettlementConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementConflicts,
			Help: HelpTextSettlementConflicts,
		},
		[]string{LabelGameType},
	)

	SettlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementDuration,
			Help:    HelpTextSettlementDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelGameType},
	)

	PrizesPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePrizesPaid,
			Help: HelpTextPrizesPaid,
		},
		[]string{LabelGameType},
	)

	Sales = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSales,
			Help: HelpTextSales,
		},
		[]string{LabelGameType},
	)

	WinProbability = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameWinProbability,
			Help:    HelpTextWinProbability,
			Buckets: ProbabilityBuckets,
		},
		[]string{LabelGameType},
	)

	AuditAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuditAlerts,
			Help: HelpTextAuditAlerts,
		},
		[]string{LabelGameType, LabelSeverity},
	)

	EmergencyStop = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameEmergencyStop,
			Help: HelpTextEmergencyStop,
		},
		[]string{LabelGameType},
	)
)
