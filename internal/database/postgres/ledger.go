package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

const ledgerColumns = `game_type_id, ledger_date, total_sales, total_prizes_paid, carried_over,
	prize_budget_pct, alert_level, version, updated_at`

type ledgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(db *pgxpool.Pool) repository.Ledger {
	return &ledgerRepository{db: db}
}

// GetLedger returns the ledger row for (gameType, day)
func (r *ledgerRepository) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	return getLedger(ctx, r.db, gameType, day)
}

// OpenDay creates the ledger for day. Opening a day twice is a no-op, except that a row
// created by an early settlement still receives its carry over once.
func (r *ledgerRepository) OpenDay(ctx context.Context, gameType string, day time.Time, prizeBudgetPct decimal.Decimal, carryForward bool) (*domain.BudgetLedger, error) {
	day = domain.LedgerDay(day)

	carried := decimal.Zero
	if carryForward {
		query := `
			SELECT GREATEST(ROUND(carried_over + total_sales * prize_budget_pct - total_prizes_paid, 2), 0)
			FROM budget_ledgers
			WHERE game_type_id = $1 AND ledger_date = $2
		`
		var prev pgtype.Numeric
		err := r.db.QueryRow(ctx, query, gameType, day.AddDate(0, 0, -1)).Scan(&prev)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadCarryOver, err)
		}
		carried = toDecimal(prev)
	}

	query := `
		INSERT INTO budget_ledgers (game_type_id, ledger_date, carried_over, prize_budget_pct)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_type_id, ledger_date) DO UPDATE
		SET carried_over = EXCLUDED.carried_over,
			version = budget_ledgers.version + 1,
			updated_at = NOW()
		WHERE budget_ledgers.carried_over = 0 AND EXCLUDED.carried_over > 0
	`
	if _, err := r.db.Exec(ctx, query, gameType, day, numeric(carried), numeric(prizeBudgetPct)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenLedgerDay, err)
	}

	return getLedger(ctx, r.db, gameType, day)
}

// getLedger reads a ledger row through the pool or a transaction
func getLedger(ctx context.Context, q querier, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM budget_ledgers WHERE game_type_id = $1 AND ledger_date = $2`

	l, err := scanLedger(q.QueryRow(ctx, query, gameType, domain.LedgerDay(day)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLedger, err)
	}
	return l, nil
}

func scanLedger(row pgx.Row) (*domain.BudgetLedger, error) {
	var (
		l                         domain.BudgetLedger
		sales, paid, carried, pct pgtype.Numeric
		level                     string
	)
	if err := row.Scan(&l.GameType, &l.Day, &sales, &paid, &carried, &pct, &level, &l.Version, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Day = domain.LedgerDay(l.Day)
	l.TotalSales = toDecimal(sales)
	l.TotalPrizesPaid = toDecimal(paid)
	l.CarriedOver = toDecimal(carried)
	l.PrizeBudgetPct = toDecimal(pct)
	l.AlertLevel = domain.AlertLevel(level)
	return &l, nil
}
