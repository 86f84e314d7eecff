package domain

import "github.com/shopspring/decimal"

// ItemCategory decides how a won prize is delivered
type ItemCategory string

const (
	CategoryCash     ItemCategory = "cash"     // credited to the wallet
	CategoryPhysical ItemCategory = "physical" // granted as a claim for fulfilment
)

// Rarity is display metadata only; it never affects the draw
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Item is the read-only catalog view of a prize
type Item struct {
	ID       int             `json:"item_id" db:"item_id"`
	Name     string          `json:"name" db:"name"`
	ImageRef string          `json:"image_ref" db:"image_ref"`
	Rarity   Rarity          `json:"rarity" db:"rarity"`
	Value    decimal.Decimal `json:"value" db:"value"`
	Category ItemCategory    `json:"category" db:"category"`
}

// IsCash reports whether the item pays out to the wallet
func (i Item) IsCash() bool {
	return i.Category == CategoryCash
}

// EligibleItem is an item together with its per-game-type eligibility.
// Weight 0 or Active=false means display-only: it may appear as a filler but never wins.
type EligibleItem struct {
	Item
	Weight float64 `json:"weight" db:"weight"`
	Active bool    `json:"active" db:"active"`
}

// Drawable reports whether the item may be drawn as a prize at all
func (e EligibleItem) Drawable() bool {
	return e.Active && e.Weight > 0
}
