package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRequestsRejected     = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Round engine metric names
const (
	MetricNameRoundsSettled       = "rounds_settled_total"
	MetricNameRoundsDemoted       = "rounds_demoted_total"
	MetricNameSettlementConflicts = "settlement_conflicts_total"
	MetricNameSettlementDuration  = "settlement_duration_seconds"
	MetricNamePrizesPaid          = "prizes_paid_total"
	MetricNameSales               = "sales_total"
	MetricNameWinProbability      = "win_probability"
	MetricNameAuditAlerts         = "audit_alerts_total"
	MetricNameEmergencyStop       = "emergency_stop_engaged"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRequestsRejected     = "Requests refused by auth or rate limiting, by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Round engine metric help text
const (
	HelpTextRoundsSettled       = "Total number of committed rounds"
	HelpTextRoundsDemoted       = "Total number of drawn wins settled as losses"
	HelpTextSettlementConflicts = "Total number of ledger version conflicts during settlement"
	HelpTextSettlementDuration  = "Settlement transaction latency in seconds, retries included"
	HelpTextPrizesPaid          = "Total cash prize value credited to wallets"
	HelpTextSales               = "Total value of rounds sold"
	HelpTextWinProbability      = "Effective win probability chosen by the payout controller"
	HelpTextAuditAlerts         = "Total number of audit alerts raised"
	HelpTextEmergencyStop       = "1 while the emergency stop is engaged for a game type"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelGameType = "game_type"
	LabelOutcome  = "outcome"
	LabelReason   = "reason"
	LabelSeverity = "severity"
)

// Outcome label values
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// Demotion reasons
const (
	DemotedNoEligible     = "no_eligible"
	DemotedBudgetExceeded = "budget_exceeded"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ProbabilityBuckets follow the controller's tier values
var ProbabilityBuckets = []float64{0, .02, .05, .1, .15, .2, .3, .45, 1}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
)
