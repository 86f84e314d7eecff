package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameType is the operator-managed configuration of a playable grid game.
// The engine only reads it.
type GameType struct {
	ID             string          `json:"id" db:"game_type_id"`
	Name           string          `json:"name" db:"display_name"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Active         bool            `json:"active" db:"active"`
	CapMultiplier  decimal.Decimal `json:"cap_multiplier" db:"cap_multiplier"`     // max prize = price * multiplier
	PrizeBudgetPct decimal.Decimal `json:"prize_budget_pct" db:"prize_budget_pct"` // share of sales available for prizes
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// MaxPrizeValue is the absolute value cap for any prize of this game type
func (g GameType) MaxPrizeValue() decimal.Decimal {
	return g.Price.Mul(g.CapMultiplier)
}

// Playable reports whether rounds may be started for the game type
func (g GameType) Playable() bool {
	return g.Active && g.Price.IsPositive()
}
