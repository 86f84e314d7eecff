package prize

import (
	"errors"
	"sort"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// ErrNoCandidates is returned when no candidate carries positive weight
var ErrNoCandidates = errors.New("no prize candidates with positive weight")

// Select draws one item with probability weight / sum(weights). Candidates are
// ordered by item ID first so that a given RNG state always picks the same item,
// regardless of the order the catalog was loaded in.
func Select(candidates []domain.EligibleItem, rng domain.RNG) (domain.EligibleItem, error) {
	pool := make([]domain.EligibleItem, 0, len(candidates))
	total := 0.0
	for _, c := range candidates {
		if c.Weight > 0 {
			pool = append(pool, c)
			total += c.Weight
		}
	}
	if len(pool) == 0 {
		return domain.EligibleItem{}, ErrNoCandidates
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	r := rng.Float64() * total
	cumulative := 0.0
	for _, c := range pool {
		cumulative += c.Weight
		if r < cumulative {
			return c, nil
		}
	}
	// Float rounding can leave r == total
	return pool[len(pool)-1], nil
}
