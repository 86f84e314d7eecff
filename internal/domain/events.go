package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types follow the pattern <entity>.<action>
const (
	// EventTypeRoundSettled is published after a round commits
	EventTypeRoundSettled = "round.settled"

	// EventTypeAuditAlert is published for every stored audit alert
	EventTypeAuditAlert = "audit.alert"

	// EventTypeEmergencyEngaged is published when an emergency stop is engaged
	EventTypeEmergencyEngaged = "emergency.engaged"

	// EventTypeEmergencyCleared is published when an operator clears a stop
	EventTypeEmergencyCleared = "emergency.cleared"

	// EventTypeLedgerRollover is published when the daily ledger rollover completes
	EventTypeLedgerRollover = "ledger.rollover"
)

// RoundSettledPayload is the payload of EventTypeRoundSettled
type RoundSettledPayload struct {
	RoundID   string          `json:"round_id"`
	UserID    string          `json:"user_id"`
	GameType  string          `json:"game_type"`
	BetAmount decimal.Decimal `json:"bet_amount"`
	HasWin    bool            `json:"has_win"`
	WonItemID *int            `json:"won_item_id,omitempty"`
	WonAmount decimal.Decimal `json:"won_amount"`
	ForcedWin bool            `json:"forced_win"`
	Timestamp int64           `json:"timestamp"`
}

// EmergencyPayload is the payload of the emergency stop events
type EmergencyPayload struct {
	GameType  string    `json:"game_type"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// LedgerRolloverPayload is the payload of EventTypeLedgerRollover
type LedgerRolloverPayload struct {
	Day          time.Time `json:"day"`
	LedgersOpen  int       `json:"ledgers_open"`
	CarryForward bool      `json:"carry_forward"`
}
