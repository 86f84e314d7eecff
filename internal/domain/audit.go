package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuditAlert is raised by periodic reconciliation, never by the settlement path.
// Severity reuses the ledger alert levels.
type AuditAlert struct {
	ID          uuid.UUID       `json:"id"`
	GameType    string          `json:"game_type"`
	Day         time.Time       `json:"day"`
	Check       string          `json:"check"`
	Description string          `json:"description"`
	Expected    decimal.Decimal `json:"expected_value"`
	Actual      decimal.Decimal `json:"actual_value"`
	Discrepancy decimal.Decimal `json:"discrepancy"`
	Severity    AlertLevel      `json:"severity"`
	Resolved    bool            `json:"resolved"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RoundTotals are the sums over committed rounds for one (game type, day)
type RoundTotals struct {
	Rounds    int64           `json:"rounds"`
	Bets      decimal.Decimal `json:"bets"`
	WonAmount decimal.Decimal `json:"won_amount"`
}

// ReconcileSnapshot is a ledger row read in the same snapshot as the sums it must match
type ReconcileSnapshot struct {
	Ledger    BudgetLedger    `json:"ledger"`
	Rounds    RoundTotals     `json:"rounds"`
	WalletNet decimal.Decimal `json:"wallet_net"`
}

// EmergencyStop is the circuit breaker state for a game type
type EmergencyStop struct {
	GameType  string    `json:"game_type"`
	Engaged   bool      `json:"engaged"`
	Reason    string    `json:"reason"`
	UpdatedAt time.Time `json:"updated_at"`
}
