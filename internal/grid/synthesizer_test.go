package grid

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

func catalog(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			ID:       i + 1,
			Name:     "item",
			Value:    decimal.NewFromInt(int64(i + 1)),
			Category: domain.CategoryCash,
		}
	}
	return items
}

func TestSynthesize_InvariantHoldsAcrossSeeds(t *testing.T) {
	for seed := uint64(0); seed < 500; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31+7))
		size := 1 + rng.IntN(12)
		items := catalog(size)
		hasWin := rng.IntN(2) == 0 && size > 1

		var won *domain.Item
		var wonID *int
		if hasWin {
			w := items[rng.IntN(size)]
			won = &w
			wonID = &w.ID
		}

		g, err := Synthesize(hasWin, won, items, rng)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, g.Validate(hasWin, wonID), "seed %d size %d", seed, size)

		fillerDistinct := size
		toFill := domain.GridSize
		if hasWin {
			fillerDistinct--
			toFill -= domain.WinningCellCount
		}
		assert.Equal(t, fillerDistinct*domain.MaxFillerRepeats < toFill, g.Relaxed, "seed %d", seed)

		for _, c := range g.Cells {
			if hasWin && !c.IsWinning {
				assert.NotEqual(t, won.ID, c.ItemID, "won item used as filler, seed %d", seed)
			}
		}
		if !g.Relaxed {
			for id, n := range g.Counts() {
				if hasWin && id == won.ID {
					continue
				}
				assert.LessOrEqual(t, n, domain.MaxFillerRepeats, "seed %d", seed)
			}
		}
	}
}

func TestSynthesize_WinPlacesThreeFlaggedCells(t *testing.T) {
	items := catalog(8)
	won := items[3]

	g, err := Synthesize(true, &won, items, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	idx := g.WinningCells()
	require.Len(t, idx, domain.WinningCellCount)
	for _, i := range idx {
		assert.Equal(t, won.ID, g.Cells[i].ItemID)
		assert.True(t, g.Cells[i].Value.Equal(won.Value))
	}
	assert.False(t, g.Relaxed)
}

func TestSynthesize_Deterministic(t *testing.T) {
	items := catalog(10)
	won := items[0]

	a, err := Synthesize(true, &won, items, rand.New(rand.NewPCG(99, 100)))
	require.NoError(t, err)
	// Input order must not matter
	reversed := make([]domain.Item, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}
	b, err := Synthesize(true, &won, reversed, rand.New(rand.NewPCG(99, 100)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSynthesize_SmallPoolRelaxes(t *testing.T) {
	t.Run("loss with three fillers", func(t *testing.T) {
		g, err := Synthesize(false, nil, catalog(3), rand.New(rand.NewPCG(5, 6)))
		require.NoError(t, err)
		assert.True(t, g.Relaxed)
		for _, n := range g.Counts() {
			assert.LessOrEqual(t, n, 3)
		}
		assert.NoError(t, g.Validate(false, nil))
	})

	t.Run("loss with five fillers is not relaxed", func(t *testing.T) {
		g, err := Synthesize(false, nil, catalog(5), rand.New(rand.NewPCG(5, 6)))
		require.NoError(t, err)
		assert.False(t, g.Relaxed)
		assert.NoError(t, g.Validate(false, nil))
	})

	t.Run("win with a single other filler", func(t *testing.T) {
		items := catalog(2)
		won := items[0]
		g, err := Synthesize(true, &won, items, rand.New(rand.NewPCG(5, 6)))
		require.NoError(t, err)
		assert.True(t, g.Relaxed)
		assert.Equal(t, 6, g.Counts()[2])
		assert.NoError(t, g.Validate(true, &won.ID))
	})
}

func TestSynthesize_EmptyPool(t *testing.T) {
	_, err := Synthesize(false, nil, nil, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, domain.ErrNoEligibleCatalog)

	only := catalog(1)
	_, err = Synthesize(true, &only[0], only, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, domain.ErrNoEligibleCatalog)
}

func TestSynthesize_WinWithoutItem(t *testing.T) {
	_, err := Synthesize(true, nil, catalog(6), rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)
}
