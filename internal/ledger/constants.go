package ledger

// JobNameRollover names the rollover job in worker logs
const JobNameRollover = "ledger_rollover"

// RolloverCronSpec opens the new UTC day's ledgers at midnight
const RolloverCronSpec = "0 0 * * *"

// Log messages
const (
	LogMsgRolloverStarted  = "Ledger rollover started"
	LogMsgRolloverOpened   = "Ledger opened"
	LogMsgRolloverFailed   = "Failed to open ledger"
	LogMsgRolloverFinished = "Ledger rollover finished"
)

// Error messages
const (
	ErrMsgListGameTypesFailed = "failed to list game types"
	ErrMsgGetGameTypeFailed   = "failed to get game type"
	ErrMsgReadLedgerFailed    = "failed to read ledger"
	ErrMsgOpenDayFailed       = "failed to open ledger day"
)
