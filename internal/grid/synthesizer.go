package grid

import (
	"fmt"
	"sort"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// Synthesize builds the 3x3 display for a settled outcome.
//
// On a win, three cells chosen uniformly at random carry wonItem and are flagged
// winning; the rest are fillers. On a loss every cell is a filler. No filler appears
// more than domain.MaxFillerRepeats times unless the pool is too small to fill the
// grid that way, in which case the limit is raised just enough and the grid is marked
// Relaxed. The won item is never used as a filler.
func Synthesize(hasWin bool, wonItem *domain.Item, fillers []domain.Item, rng domain.RNG) (domain.Grid, error) {
	if hasWin && wonItem == nil {
		return domain.Grid{}, fmt.Errorf("%w: win without a won item", domain.ErrInvalidGrid)
	}

	excluded := -1
	if hasWin {
		excluded = wonItem.ID
	}
	pool := distinctFillers(fillers, excluded)
	if len(pool) == 0 {
		return domain.Grid{}, fmt.Errorf("%s: %w", ErrMsgNoFillers, domain.ErrNoEligibleCatalog)
	}

	var g domain.Grid
	winning := make(map[int]bool, domain.WinningCellCount)
	if hasWin {
		for _, idx := range pickPositions(rng) {
			g.Cells[idx] = domain.NewCell(*wonItem, true)
			winning[idx] = true
		}
	}

	toFill := domain.GridSize - len(winning)
	limit := domain.MaxFillerRepeats
	if len(pool)*limit < toFill {
		limit = (toFill + len(pool) - 1) / len(pool)
		g.Relaxed = true
	}

	drawn := drawFillers(pool, limit, toFill, rng)
	next := 0
	for i := range g.Cells {
		if winning[i] {
			continue
		}
		g.Cells[i] = domain.NewCell(drawn[next], false)
		next++
	}

	return g, nil
}

// distinctFillers dedupes by ID, drops the excluded ID and sorts by ID
func distinctFillers(fillers []domain.Item, excluded int) []domain.Item {
	seen := make(map[int]bool, len(fillers))
	out := make([]domain.Item, 0, len(fillers))
	for _, f := range fillers {
		if f.ID == excluded || seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// pickPositions runs a partial Fisher-Yates over the cell indexes
func pickPositions(rng domain.RNG) []int {
	idx := make([]int, domain.GridSize)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < domain.WinningCellCount; i++ {
		j := i + rng.IntN(domain.GridSize-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:domain.WinningCellCount]
}

// drawFillers samples n items without replacement from a bag holding each
// filler limit times, so no filler can exceed limit
func drawFillers(pool []domain.Item, limit, n int, rng domain.RNG) []domain.Item {
	bag := make([]domain.Item, 0, len(pool)*limit)
	for _, f := range pool {
		for k := 0; k < limit; k++ {
			bag = append(bag, f)
		}
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(bag)-i)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag[:n]
}
