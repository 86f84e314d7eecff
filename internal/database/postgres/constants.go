package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetGameType       = "failed to get game type"
	ErrMsgFailedToListGameTypes     = "failed to list game types"
	ErrMsgFailedToListEligibleItems = "failed to list eligible items"
	ErrMsgFailedToScanEligibleItem  = "failed to scan eligible item"
)

// Error Messages - Round Operations
const (
	ErrMsgFailedToGetRound          = "failed to get round"
	ErrMsgFailedToInsertRound       = "failed to insert round"
	ErrMsgFailedToMarshalGrid       = "failed to marshal grid"
	ErrMsgFailedToUnmarshalGrid     = "failed to unmarshal grid"
	ErrMsgFailedToGetWallet         = "failed to get wallet"
	ErrMsgFailedToLockWallet        = "failed to lock wallet"
	ErrMsgFailedToUpdateWallet      = "failed to update wallet"
	ErrMsgWalletMissing             = "wallet row missing for user %s"
	ErrMsgFailedToInsertWalletEntry = "failed to insert wallet entry"
	ErrMsgFailedToGrantItem         = "failed to grant item"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToGetLedger       = "failed to get ledger"
	ErrMsgFailedToEnsureLedger    = "failed to ensure ledger"
	ErrMsgFailedToUpdateLedger    = "failed to update ledger"
	ErrMsgFailedToOpenLedgerDay   = "failed to open ledger day"
	ErrMsgFailedToReadCarryOver   = "failed to read carry over"
	ErrMsgFailedToListLedgers     = "failed to list ledgers"
	ErrMsgFailedToRaiseAlertLevel = "failed to raise ledger alert level"
)

// Error Messages - Audit Operations
const (
	ErrMsgFailedToSumRounds        = "failed to sum rounds"
	ErrMsgFailedToSumWalletEntries = "failed to sum wallet entries"
	ErrMsgFailedToInsertAlert      = "failed to insert audit alert"
	ErrMsgFailedToFindAlert        = "failed to find audit alert"
	ErrMsgFailedToListAlerts       = "failed to list audit alerts"
	ErrMsgFailedToResolveAlert     = "failed to resolve audit alert"
)

// Error Messages - Emergency Operations
const (
	ErrMsgFailedToGetEmergencyStop   = "failed to get emergency stop"
	ErrMsgFailedToSetEmergencyStop   = "failed to set emergency stop"
	ErrMsgFailedToClearEmergencyStop = "failed to clear emergency stop"
)
