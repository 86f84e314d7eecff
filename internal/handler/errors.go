package handler

// Error kinds returned in ErrorResponse.Kind. Clients branch on these, not on messages.
const (
	KindUnauthenticated     = "unauthenticated"
	KindInvalidGameType     = "invalid_game_type"
	KindForcedWinForbidden  = "forced_win_forbidden"
	KindInsufficientFunds   = "insufficient_funds"
	KindNoEligibleCatalog   = "no_eligible_catalog"
	KindSettlementConflict  = "settlement_conflict"
	KindIdempotencyMismatch = "idempotency_mismatch"
	KindNotFound            = "not_found"
	KindRateLimited         = "rate_limited"
	KindInvalidRequest      = "invalid_request"
	KindInternal            = "internal"
)

// User-facing messages. Internal error details never reach the client.
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnauthenticated     = "Authentication required"
	ErrMsgInvalidGameType     = "Unknown or inactive game type"
	ErrMsgForcedWinForbidden  = "Forced wins require the operator role"
	ErrMsgInsufficientFunds   = "Not enough balance for this round"
	ErrMsgNoEligibleCatalog   = "This game has no prizes available right now"
	ErrMsgSettlementConflict  = "The round could not be settled. Please try again."
	ErrMsgIdempotencyMismatch = "Idempotency key was already used for a different game"
	ErrMsgRoundNotFound       = "Round not found"
	ErrMsgAlertNotFound       = "Alert not found"
	ErrMsgLedgerNotFound      = "Ledger not found"

	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidRoundID        = "Invalid round ID"
	ErrMsgInvalidAlertID        = "Invalid alert ID"
	ErrMsgInvalidDay            = "Invalid day, expected YYYY-MM-DD"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgIdempotencyKeyClash   = "Idempotency-Key header and body disagree"
	ErrMsgTooManyRequests       = "Too many requests. Please slow down."
)

// Success messages
const (
	MsgAlertResolved     = "Alert resolved"
	MsgEmergencyEngaged  = "Emergency stop engaged"
	MsgEmergencyCleared  = "Emergency stop cleared"
	MsgReconcileComplete = "Reconciliation complete"
)

// Log messages
const (
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgStartRoundFailed = "Failed to start round"
	LogMsgGetRoundFailed   = "Failed to get round"
	LogMsgCatalogFailed    = "Failed to load display catalog"
	LogMsgSnapshotFailed   = "Failed to read ledger snapshot"
	LogMsgReconcileFailed  = "Manual reconciliation failed"
	LogMsgListAlertsFailed = "Failed to list alerts"
	LogMsgResolveFailed    = "Failed to resolve alert"
	LogMsgEmergencyFailed  = "Failed to change emergency stop"
	LogMsgReplayFailed     = "Failed to replay round"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEmergencyEngaged = "Emergency stop engaged by operator"
	LogMsgEmergencyCleared = "Emergency stop cleared by operator"
	LogMsgForcedWinAttempt = "Forced win requested"
)

// Header names
const (
	HeaderIdempotencyKey = "Idempotency-Key"
)
