package repository

import (
	"context"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// Catalog is the read-only view of game types and their prize eligibility.
// Catalog editing happens outside the engine.
type Catalog interface {
	// GetGameType returns domain.ErrGameTypeNotFound for unknown ids
	GetGameType(ctx context.Context, gameTypeID string) (*domain.GameType, error)
	ListGameTypes(ctx context.Context) ([]domain.GameType, error)
	// ListEligibleItems returns every item linked to the game type, display-only ones included
	ListEligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error)
}
