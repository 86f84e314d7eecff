package payout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/osse101/PrizeGrid_Go/internal/validation"
)

// MarginTier maps a margin strictly above Above to a base win probability
type MarginTier struct {
	Above       float64
	Probability float64
}

// BudgetTier applies while the remaining budget, in price units, is below BelowUnits.
// MaxValueUnits limits prize value in price units; 0 leaves value unrestricted.
type BudgetTier struct {
	BelowUnits    float64
	Cap           float64
	MaxValueUnits float64
}

// Config holds the tier tables of the controller
type Config struct {
	MarginTiers            []MarginTier // checked in descending Above order
	MarginFloor            float64      // probability when no margin tier matches
	ExhaustedCap           float64      // cap once remaining budget <= 0
	ExhaustedMaxValueUnits float64      // value limit once remaining budget <= 0
	BudgetTiers            []BudgetTier // checked in ascending BelowUnits order
}

// DefaultConfig returns the reference tier tables
func DefaultConfig() Config {
	return Config{
		MarginTiers: []MarginTier{
			{Above: 0.95, Probability: 0.45},
			{Above: 0.90, Probability: 0.30},
			{Above: 0.85, Probability: 0.20},
			{Above: 0.80, Probability: 0.15},
		},
		MarginFloor:            DefaultMarginFloor,
		ExhaustedCap:           DefaultExhaustedCap,
		ExhaustedMaxValueUnits: DefaultExhaustedMaxValueUnits,
		BudgetTiers: []BudgetTier{
			{BelowUnits: 5, Cap: 0.05, MaxValueUnits: 1},
			{BelowUnits: 20, Cap: 0.10, MaxValueUnits: 5},
			{BelowUnits: 100, Cap: 0.20},
		},
	}
}

// Validate normalises tier order and rejects tables that would let the win
// probability rise while the budget shrinks
func (c *Config) Validate() error {
	if len(c.MarginTiers) == 0 {
		return errors.New(ErrMsgMarginTierRequired)
	}
	for _, p := range []float64{c.MarginFloor, c.ExhaustedCap} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: %v", ErrMsgProbabilityRange, p)
		}
	}
	for _, t := range c.MarginTiers {
		if t.Probability < 0 || t.Probability > 1 {
			return fmt.Errorf("%s: %v", ErrMsgProbabilityRange, t.Probability)
		}
	}

	sort.SliceStable(c.MarginTiers, func(i, j int) bool { return c.MarginTiers[i].Above > c.MarginTiers[j].Above })
	sort.SliceStable(c.BudgetTiers, func(i, j int) bool { return c.BudgetTiers[i].BelowUnits < c.BudgetTiers[j].BelowUnits })

	prev := c.ExhaustedCap
	for _, t := range c.BudgetTiers {
		if t.BelowUnits <= 0 {
			return fmt.Errorf("%s: %v", ErrMsgBudgetTierUnits, t.BelowUnits)
		}
		if t.Cap < 0 || t.Cap > 1 {
			return fmt.Errorf("%s: %v", ErrMsgProbabilityRange, t.Cap)
		}
		if t.Cap < prev {
			return fmt.Errorf("%s: %v below %v", ErrMsgBudgetTierOrder, t.Cap, prev)
		}
		prev = t.Cap
	}
	return nil
}

// ParseTiers reads tier tables from JSON on top of DefaultConfig. Missing keys keep defaults.
//
//	{"margin":[{"above":0.95,"p":0.45}],"margin_floor":0.05,
//	 "exhausted":{"cap":0.02,"max_value_units":0.5},
//	 "budget":[{"below_units":5,"cap":0.05,"max_value_units":1}]}
func ParseTiers(raw string) (Config, error) {
	cfg := DefaultConfig()
	if raw == "" {
		return cfg, nil
	}
	if !gjson.Valid(raw) {
		return Config{}, errors.New(ErrMsgInvalidTiersJSON)
	}
	if err := validation.Default().ValidateBytes([]byte(raw), validation.SchemaPayoutTiers); err != nil {
		return Config{}, fmt.Errorf("%s: %w", ErrMsgInvalidTiersJSON, err)
	}

	doc := gjson.Parse(raw)

	if margin := doc.Get(pathMargin); margin.Exists() {
		cfg.MarginTiers = nil
		margin.ForEach(func(_, v gjson.Result) bool {
			cfg.MarginTiers = append(cfg.MarginTiers, MarginTier{
				Above:       v.Get(fieldAbove).Float(),
				Probability: v.Get(fieldProbability).Float(),
			})
			return true
		})
	}
	if v := doc.Get(pathMarginFloor); v.Exists() {
		cfg.MarginFloor = v.Float()
	}
	if v := doc.Get(pathExhaustedCap); v.Exists() {
		cfg.ExhaustedCap = v.Float()
	}
	if v := doc.Get(pathExhaustedValue); v.Exists() {
		cfg.ExhaustedMaxValueUnits = v.Float()
	}
	if budget := doc.Get(pathBudget); budget.Exists() {
		cfg.BudgetTiers = nil
		budget.ForEach(func(_, v gjson.Result) bool {
			cfg.BudgetTiers = append(cfg.BudgetTiers, BudgetTier{
				BelowUnits:    v.Get(fieldBelowUnits).Float(),
				Cap:           v.Get(fieldCap).Float(),
				MaxValueUnits: v.Get(fieldMaxValueUnits).Float(),
			})
			return true
		})
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", ErrMsgInvalidTiersJSON, err)
	}
	return cfg, nil
}
