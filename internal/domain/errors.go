package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Caller errors
	ErrMsgUnauthenticated     = "unauthenticated"
	ErrMsgInvalidGameType     = "invalid game type"
	ErrMsgForcedWinForbidden  = "forced win requires operator role"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgNoEligibleCatalog   = "no eligible catalog for game type"
	ErrMsgSettlementConflict  = "settlement conflict"
	ErrMsgEmergencyStopped    = "emergency stop engaged"
	ErrMsgBudgetExceeded      = "prize exceeds remaining budget"
	ErrMsgVersionConflict     = "ledger version conflict"
	ErrMsgInvalidGrid         = "invalid grid"
	ErrMsgRoundNotFound       = "round not found"
	ErrMsgAlertNotFound       = "audit alert not found"
	ErrMsgLedgerNotFound      = "budget ledger not found"
	ErrMsgGameTypeNotFound    = "game type not found"
	ErrMsgIdempotencyMismatch = "idempotency key reused for a different game type"
	ErrMsgDuplicateRound      = "round with this idempotency key already exists"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Round engine errors.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUnauthenticated    = errors.New(ErrMsgUnauthenticated)
	ErrInvalidGameType    = errors.New(ErrMsgInvalidGameType)
	ErrForcedWinForbidden = errors.New(ErrMsgForcedWinForbidden)
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)
	ErrNoEligibleCatalog  = errors.New(ErrMsgNoEligibleCatalog)
	// ErrSettlementConflict means the round never committed; callers may retry.
	ErrSettlementConflict = errors.New(ErrMsgSettlementConflict)
	// ErrEmergencyStopped is never returned to players. The controller turns it into a loss.
	ErrEmergencyStopped = errors.New(ErrMsgEmergencyStopped)

	// Internal to settlement
	ErrBudgetExceeded  = errors.New(ErrMsgBudgetExceeded)
	ErrVersionConflict = errors.New(ErrMsgVersionConflict)
	ErrInvalidGrid     = errors.New(ErrMsgInvalidGrid)

	// Lookup errors
	ErrRoundNotFound       = errors.New(ErrMsgRoundNotFound)
	ErrAlertNotFound       = errors.New(ErrMsgAlertNotFound)
	ErrLedgerNotFound      = errors.New(ErrMsgLedgerNotFound)
	ErrGameTypeNotFound    = errors.New(ErrMsgGameTypeNotFound)
	ErrIdempotencyMismatch = errors.New(ErrMsgIdempotencyMismatch)
	// ErrDuplicateRound is returned by the repository when a concurrent request committed the same key first
	ErrDuplicateRound = errors.New(ErrMsgDuplicateRound)
)
