package payout

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// Decision is the controller's verdict for one round
type Decision struct {
	WinProbability    float64
	MarginProbability float64
	BudgetCap         float64
	Margin            float64
	RemainingBudget   decimal.Decimal
	MaxPrizeValue     decimal.Decimal // absolute value cap including the budget tier limit
	EmergencyStopped  bool
}

// Eligible reports whether item may be drawn as this round's prize
func (d Decision) Eligible(item domain.EligibleItem) bool {
	if !item.Drawable() {
		return false
	}
	if item.Value.GreaterThan(d.MaxPrizeValue) {
		return false
	}
	if item.IsCash() && item.Value.GreaterThan(d.RemainingBudget) {
		return false
	}
	return true
}

// Filter returns the items that pass Eligible, preserving order
func (d Decision) Filter(items []domain.EligibleItem) []domain.EligibleItem {
	out := make([]domain.EligibleItem, 0, len(items))
	for _, it := range items {
		if d.Eligible(it) {
			out = append(out, it)
		}
	}
	return out
}

// Controller converts ledger state into a win probability and an eligibility filter
type Controller interface {
	// Decide expects the ledger projected with the current round's sale
	Decide(game domain.GameType, ledger domain.BudgetLedger, emergencyStopped bool) Decision
}

type controller struct {
	cfg Config
}

// NewController creates a controller over the given tier tables.
// The config is expected to have passed Validate.
func NewController(cfg Config) Controller {
	return &controller{cfg: cfg}
}

func (c *controller) Decide(game domain.GameType, ledger domain.BudgetLedger, emergencyStopped bool) Decision {
	margin := ledger.Margin()
	remaining := ledger.RemainingBudget()

	marginP := c.marginProbability(margin)
	budgetCap, valueUnits := c.budgetLimits(remaining, game.Price)

	maxValue := game.MaxPrizeValue()
	if valueUnits > 0 {
		tierMax := game.Price.Mul(decimal.NewFromFloat(valueUnits))
		maxValue = decimal.Min(maxValue, tierMax)
	}

	d := Decision{
		WinProbability:    math.Min(marginP, budgetCap),
		MarginProbability: marginP,
		BudgetCap:         budgetCap,
		Margin:            margin,
		RemainingBudget:   remaining,
		MaxPrizeValue:     maxValue,
		EmergencyStopped:  emergencyStopped,
	}
	if emergencyStopped {
		d.WinProbability = 0
	}
	return d
}

func (c *controller) marginProbability(margin float64) float64 {
	for _, t := range c.cfg.MarginTiers {
		if margin > t.Above {
			return t.Probability
		}
	}
	return c.cfg.MarginFloor
}

// budgetLimits returns the probability cap and the value limit in price units
// for the remaining budget. A value limit of 0 means unrestricted.
func (c *controller) budgetLimits(remaining, price decimal.Decimal) (float64, float64) {
	if !remaining.IsPositive() || !price.IsPositive() {
		return c.cfg.ExhaustedCap, c.cfg.ExhaustedMaxValueUnits
	}
	units := remaining.Div(price).InexactFloat64()
	for _, t := range c.cfg.BudgetTiers {
		if units < t.BelowUnits {
			return t.Cap, t.MaxValueUnits
		}
	}
	return 1.0, 0
}
