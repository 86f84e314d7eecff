package payout

// Reference tier values
const (
	DefaultMarginFloor            = 0.05
	DefaultExhaustedCap           = 0.02
	DefaultExhaustedMaxValueUnits = 0.5
)

// Log messages
const (
	LogMsgEmergencyForcedLoss = "Emergency stop engaged, forcing zero win probability"
	LogMsgDecision            = "Payout decision"
)

// Error messages
const (
	ErrMsgInvalidTiersJSON   = "invalid payout tiers json"
	ErrMsgProbabilityRange   = "probability must be within [0,1]"
	ErrMsgBudgetTierOrder    = "budget tier caps must not decrease as budget grows"
	ErrMsgBudgetTierUnits    = "budget tier threshold must be positive"
	ErrMsgMarginTierRequired = "at least one margin tier is required"
)

// JSON paths read by ParseTiers
const (
	pathMargin         = "margin"
	pathMarginFloor    = "margin_floor"
	pathExhaustedCap   = "exhausted.cap"
	pathExhaustedValue = "exhausted.max_value_units"
	pathBudget         = "budget"
	fieldAbove         = "above"
	fieldProbability   = "p"
	fieldBelowUnits    = "below_units"
	fieldCap           = "cap"
	fieldMaxValueUnits = "max_value_units"
)
