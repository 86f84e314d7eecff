package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertLevel is the health of a ledger day. Levels only rise within a day.
type AlertLevel string

const (
	AlertNormal    AlertLevel = "normal"
	AlertWarning   AlertLevel = "warning"
	AlertCritical  AlertLevel = "critical"
	AlertEmergency AlertLevel = "emergency"
)

var alertRank = map[AlertLevel]int{
	AlertNormal:    0,
	AlertWarning:   1,
	AlertCritical:  2,
	AlertEmergency: 3,
}

// MaxAlertLevel returns the more severe of two levels
func MaxAlertLevel(a, b AlertLevel) AlertLevel {
	if alertRank[b] > alertRank[a] {
		return b
	}
	return a
}

// Budget alert thresholds, as a fraction of the budget earned so far
var (
	BudgetWarningFraction  = decimal.NewFromFloat(0.20)
	BudgetCriticalFraction = decimal.NewFromFloat(0.05)
)

// BudgetLedger is the per game type, per UTC day aggregate that throttles payouts.
// Only the settlement transaction and the daily rollover write it.
type BudgetLedger struct {
	GameType        string          `json:"game_type"`
	Day             time.Time       `json:"day"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalPrizesPaid decimal.Decimal `json:"total_prizes_paid"`
	CarriedOver     decimal.Decimal `json:"carried_over"`
	PrizeBudgetPct  decimal.Decimal `json:"prize_budget_pct"`
	AlertLevel      AlertLevel      `json:"alert_level"`
	Version         int64           `json:"version"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LedgerDay truncates t to the UTC calendar day that keys the ledger
func LedgerDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Budget is the total payout allowance earned so far today
func (l BudgetLedger) Budget() decimal.Decimal {
	return l.CarriedOver.Add(l.TotalSales.Mul(l.PrizeBudgetPct))
}

// RemainingBudget = carriedOver + totalSales*pct - totalPrizesPaid
func (l BudgetLedger) RemainingBudget() decimal.Decimal {
	return l.Budget().Sub(l.TotalPrizesPaid)
}

// BankBalance is the house's net take for the day
func (l BudgetLedger) BankBalance() decimal.Decimal {
	return l.TotalSales.Sub(l.TotalPrizesPaid)
}

// Margin returns (sales - paid) / sales. A day without sales counts as full margin.
func (l BudgetLedger) Margin() float64 {
	if !l.TotalSales.IsPositive() {
		return 1.0
	}
	return l.BankBalance().Div(l.TotalSales).InexactFloat64()
}

// Projected returns the ledger as it will look once a round of the given price is sold
func (l BudgetLedger) Projected(price decimal.Decimal) BudgetLedger {
	p := l
	p.TotalSales = l.TotalSales.Add(price)
	return p
}

// Settled applies one round's effects and recomputes the alert level
func (l BudgetLedger) Settled(price, wonAmount decimal.Decimal) BudgetLedger {
	s := l
	s.TotalSales = l.TotalSales.Add(price)
	s.TotalPrizesPaid = l.TotalPrizesPaid.Add(wonAmount)
	s.AlertLevel = MaxAlertLevel(l.AlertLevel, s.BudgetAlertLevel())
	return s
}

// BudgetAlertLevel derives an alert level from how much of the budget is left
func (l BudgetLedger) BudgetAlertLevel() AlertLevel {
	remaining := l.RemainingBudget()
	if remaining.IsNegative() {
		return AlertEmergency
	}
	budget := l.Budget()
	if !budget.IsPositive() {
		return AlertNormal
	}
	fraction := remaining.Div(budget)
	switch {
	case fraction.LessThan(BudgetCriticalFraction):
		return AlertCritical
	case fraction.LessThan(BudgetWarningFraction):
		return AlertWarning
	default:
		return AlertNormal
	}
}
