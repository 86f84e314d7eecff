package round

// Formatting defaults
const (
	DefaultCurrency = "BRL"
	DefaultLocale   = "pt-BR"
)

// Player-facing messages. %s receives a formatted amount.
const (
	MsgCashWin     = "You won %s! New balance: %s"
	MsgPhysicalWin = "You won %s! Your prize claim is being processed. Balance: %s"
	MsgLoss        = "No win this time. Balance: %s"
)

// Log messages
const (
	LogMsgRoundStarted       = "Round started"
	LogMsgRoundSettled       = "Round settled"
	LogMsgRoundReplayed      = "Round replayed from idempotency key"
	LogMsgWinDemoted         = "Drawn win settled as a loss"
	LogMsgRelaxedGrid        = "Filler pool too small for repeat limit, grid relaxed"
	LogMsgEmergencyCheckFail = "Emergency stop lookup failed, playing as stopped"
	LogMsgForcedWin          = "Forced win requested"
	LogMsgReplayMismatch     = "Replayed grid differs from stored grid"
)

// Error messages
const (
	ErrMsgIdempotencyLookup   = "failed to look up idempotency key"
	ErrMsgReadWalletFailed    = "failed to read wallet"
	ErrMsgReadLedgerFailed    = "failed to read ledger"
	ErrMsgSeedFailed          = "failed to seed round"
	ErrMsgSynthesizeFailed    = "failed to synthesize grid"
	ErrMsgSettleFailed        = "failed to settle round"
	ErrMsgGetRoundFailed      = "failed to get round"
	ErrMsgLoadCatalogFailed   = "failed to load catalog"
	ErrMsgInvalidFormatConfig = "invalid currency format config"
)
