package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

const gameTypeColumns = `game_type_id, display_name, price, active, cap_multiplier, prize_budget_pct, created_at`

type catalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(db *pgxpool.Pool) repository.Catalog {
	return &catalogRepository{db: db}
}

// GetGameType returns a single game type
func (r *catalogRepository) GetGameType(ctx context.Context, gameTypeID string) (*domain.GameType, error) {
	query := `SELECT ` + gameTypeColumns + ` FROM game_types WHERE game_type_id = $1`

	g, err := scanGameType(r.db.QueryRow(ctx, query, gameTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameTypeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetGameType, err)
	}
	return g, nil
}

// ListGameTypes returns every game type, inactive ones included
func (r *catalogRepository) ListGameTypes(ctx context.Context) ([]domain.GameType, error) {
	query := `SELECT ` + gameTypeColumns + ` FROM game_types ORDER BY game_type_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGameTypes, err)
	}
	defer rows.Close()

	var types []domain.GameType
	for rows.Next() {
		g, err := scanGameType(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGameTypes, err)
		}
		types = append(types, *g)
	}
	return types, rows.Err()
}

// ListEligibleItems returns every item linked to the game type
func (r *catalogRepository) ListEligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error) {
	query := `
		SELECT i.item_id, i.name, i.image_ref, i.rarity, i.value, i.category, l.weight, l.active
		FROM game_type_items l
		JOIN items i ON i.item_id = l.item_id
		WHERE l.game_type_id = $1
		ORDER BY i.item_id
	`

	rows, err := r.db.Query(ctx, query, gameTypeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEligibleItems, err)
	}
	defer rows.Close()

	var items []domain.EligibleItem
	for rows.Next() {
		var (
			e        domain.EligibleItem
			value    pgtype.Numeric
			rarity   string
			category string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.ImageRef, &rarity, &value, &category, &e.Weight, &e.Active); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanEligibleItem, err)
		}
		e.Rarity = domain.Rarity(rarity)
		e.Category = domain.ItemCategory(category)
		e.Value = toDecimal(value)
		items = append(items, e)
	}
	return items, rows.Err()
}

func scanGameType(row pgx.Row) (*domain.GameType, error) {
	var (
		g                  domain.GameType
		price, capMul, pct pgtype.Numeric
	)
	if err := row.Scan(&g.ID, &g.Name, &price, &g.Active, &capMul, &pct, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.Price = toDecimal(price)
	g.CapMultiplier = toDecimal(capMul)
	g.PrizeBudgetPct = toDecimal(pct)
	return &g, nil
}
