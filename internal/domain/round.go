package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementStatus of a persisted round
type SettlementStatus string

const (
	SettlementCommitted SettlementStatus = "committed"
	SettlementFailed    SettlementStatus = "failed"
)

// Round is one played game. Immutable once committed.
type Round struct {
	ID             uuid.UUID        `json:"id"`
	UserID         string           `json:"user_id"`
	GameType       string           `json:"game_type"`
	BetAmount      decimal.Decimal  `json:"bet_amount"`
	Grid           Grid             `json:"grid"`
	HasWin         bool             `json:"has_win"`
	WonItemID      *int             `json:"won_item_id"`
	WonAmount      decimal.Decimal  `json:"won_amount"` // 0 for losses and physical prizes
	ClaimID        *uuid.UUID       `json:"claim_id,omitempty"`
	Seed           RoundSeed        `json:"seed"`
	ForcedWin      bool             `json:"forced_win"`
	IdempotencyKey string           `json:"idempotency_key,omitempty"`
	Status         SettlementStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Day is the ledger day the round settled into
func (r Round) Day() time.Time {
	return LedgerDay(r.CreatedAt)
}

// RoundResult is what StartRound hands back to the player
type RoundResult struct {
	RoundID          uuid.UUID       `json:"round_id"`
	Symbols          [GridSize]Cell  `json:"symbols"`
	WonItemID        *int            `json:"won_item_id"`
	HasWin           bool            `json:"has_win"`
	WonAmount        decimal.Decimal `json:"won_amount"`
	NewWalletBalance decimal.Decimal `json:"new_wallet_balance"`
	Replayed         bool            `json:"replayed"`
	Message          string          `json:"message"`
}
