package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Grid geometry and the repeat rules that keep wins and losses unambiguous
const (
	GridSize          = 9
	WinningCellCount  = 3
	MaxFillerRepeats  = 2
	MinDistinctFiller = 5 // a loss grid needs 5 distinct fillers under MaxFillerRepeats
)

// Cell is one revealed symbol. It snapshots the item's display data so a committed
// round stays readable after catalog edits.
type Cell struct {
	ItemID    int             `json:"item_id"`
	Name      string          `json:"name"`
	ImageRef  string          `json:"image_ref"`
	Rarity    Rarity          `json:"rarity"`
	Value     decimal.Decimal `json:"value"`
	IsWinning bool            `json:"is_winning"`
}

// NewCell builds a cell for the given item
func NewCell(item Item, winning bool) Cell {
	return Cell{
		ItemID:    item.ID,
		Name:      item.Name,
		ImageRef:  item.ImageRef,
		Rarity:    item.Rarity,
		Value:     item.Value,
		IsWinning: winning,
	}
}

// Grid is the fixed 3x3 display of a round, row-major.
// Relaxed marks grids built from a filler pool too small to honour MaxFillerRepeats.
type Grid struct {
	Cells   [GridSize]Cell `json:"cells"`
	Relaxed bool           `json:"relaxed,omitempty"`
}

// Counts returns the number of cells per item id
func (g Grid) Counts() map[int]int {
	counts := make(map[int]int, GridSize)
	for _, c := range g.Cells {
		counts[c.ItemID]++
	}
	return counts
}

// WinningCells returns the indexes of cells flagged as winning
func (g Grid) WinningCells() []int {
	var idx []int
	for i, c := range g.Cells {
		if c.IsWinning {
			idx = append(idx, i)
		}
	}
	return idx
}

// Validate checks the win/loss invariant for the grid.
// A win has exactly WinningCellCount cells of wonItemID, all flagged, and no other
// id repeated that often. A loss has no flagged cell and no id at WinningCellCount or more.
// Relaxed grids skip the filler repeat check; the winning-cell rules still apply.
func (g Grid) Validate(hasWin bool, wonItemID *int) error {
	winning := g.WinningCells()
	counts := g.Counts()

	if !hasWin {
		if len(winning) != 0 {
			return fmt.Errorf("%w: loss grid has %d winning cells", ErrInvalidGrid, len(winning))
		}
		if g.Relaxed {
			return nil
		}
		for id, n := range counts {
			if n >= WinningCellCount {
				return fmt.Errorf("%w: loss grid repeats item %d %d times", ErrInvalidGrid, id, n)
			}
		}
		return nil
	}

	if wonItemID == nil {
		return fmt.Errorf("%w: win without a won item", ErrInvalidGrid)
	}
	if len(winning) != WinningCellCount {
		return fmt.Errorf("%w: win grid has %d winning cells", ErrInvalidGrid, len(winning))
	}
	for _, i := range winning {
		if g.Cells[i].ItemID != *wonItemID {
			return fmt.Errorf("%w: winning cell %d holds item %d", ErrInvalidGrid, i, g.Cells[i].ItemID)
		}
	}
	if counts[*wonItemID] != WinningCellCount {
		return fmt.Errorf("%w: won item appears %d times", ErrInvalidGrid, counts[*wonItemID])
	}
	if g.Relaxed {
		return nil
	}
	for id, n := range counts {
		if id != *wonItemID && n >= WinningCellCount {
			return fmt.Errorf("%w: filler item %d repeated %d times", ErrInvalidGrid, id, n)
		}
	}
	return nil
}
