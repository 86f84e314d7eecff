package settlement

import "time"

// Retry defaults
const (
	DefaultMaxRetries  = 5
	DefaultBaseBackoff = 10 * time.Millisecond
	DefaultMaxBackoff  = 250 * time.Millisecond
)

// Log messages
const (
	LogMsgVersionConflict     = "Ledger version conflict, retrying settlement"
	LogMsgSettlementExhausted = "Settlement retries exhausted"
	LogMsgSettled             = "Round settled"
	LogMsgIdempotentReplay    = "Returning committed round for idempotency key"
)

// Error messages
const (
	ErrMsgBeginTxFailed      = "failed to begin settlement transaction"
	ErrMsgLockWalletFailed   = "failed to lock wallet"
	ErrMsgIdempotencyLookup  = "failed to look up idempotency key"
	ErrMsgEnsureLedgerFailed = "failed to ensure ledger"
	ErrMsgReadLedgerFailed   = "failed to read ledger"
	ErrMsgInsertRoundFailed  = "failed to insert round"
	ErrMsgJournalFailed      = "failed to write wallet journal"
	ErrMsgUpdateWalletFailed = "failed to update wallet"
	ErrMsgGrantItemFailed    = "failed to grant prize item"
	ErrMsgUpdateLedgerFailed = "failed to update ledger"
	ErrMsgCommitFailed       = "failed to commit settlement"
	ErrMsgReadWalletFailed   = "failed to read wallet"
	ErrMsgInvalidRequest     = "invalid settlement request"
)
