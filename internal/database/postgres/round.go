package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

const roundSelect = `
	SELECT r.round_id, r.user_id, r.game_type_id, r.bet_amount, r.grid, r.has_win, r.won_item_id,
		r.won_amount, r.seed_hi, r.seed_lo, r.forced_win, r.idempotency_key, r.status, r.created_at,
		c.claim_id
	FROM rounds r
	LEFT JOIN prize_claims c ON c.round_id = r.round_id
`

type roundRepository struct {
	db *pgxpool.Pool
}

// NewRoundRepository creates a new PostgreSQL round repository
func NewRoundRepository(db *pgxpool.Pool) repository.Round {
	return &roundRepository{db: db}
}

// BeginRoundTx starts the settlement transaction
func (r *roundRepository) BeginRoundTx(ctx context.Context) (repository.RoundTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &roundTx{tx: tx}, nil
}

func (r *roundRepository) GetRound(ctx context.Context, roundID uuid.UUID) (*domain.Round, error) {
	return getRound(ctx, r.db, roundSelect+`WHERE r.round_id = $1`, roundID)
}

func (r *roundRepository) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	return findByKey(ctx, r.db, userID, key)
}

// GetWallet returns the wallet without locking it. A missing wallet reads as balance 0.
func (r *roundRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return getWallet(ctx, r.db, userID, false)
}

func (r *roundRepository) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	return getLedger(ctx, r.db, gameType, day)
}

// roundTx implements repository.RoundTx on a single pgx transaction
type roundTx struct {
	tx pgx.Tx
}

func (t *roundTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback after Commit returns pgx.ErrTxClosed, which repository.SafeRollback ignores
func (t *roundTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *roundTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	return getWallet(ctx, t.tx, userID, true)
}

func (t *roundTx) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	return findByKey(ctx, t.tx, userID, key)
}

func (t *roundTx) EnsureLedger(ctx context.Context, gameType string, day time.Time, prizeBudgetPct decimal.Decimal) error {
	query := `
		INSERT INTO budget_ledgers (game_type_id, ledger_date, prize_budget_pct)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_type_id, ledger_date) DO NOTHING
	`
	if _, err := t.tx.Exec(ctx, query, gameType, domain.LedgerDay(day), numeric(prizeBudgetPct)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEnsureLedger, err)
	}
	return nil
}

func (t *roundTx) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	return getLedger(ctx, t.tx, gameType, day)
}

// InsertRound returns domain.ErrDuplicateRound when (user, idempotency key) is already taken
func (t *roundTx) InsertRound(ctx context.Context, round *domain.Round) error {
	grid, err := json.Marshal(round.Grid)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalGrid, err)
	}
	hi, lo := seedWords(round.Seed)

	query := `
		INSERT INTO rounds (round_id, user_id, game_type_id, bet_amount, grid, has_win, won_item_id,
			won_amount, seed_hi, seed_lo, forced_win, idempotency_key, status, ledger_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = t.tx.Exec(ctx, query,
		round.ID, round.UserID, round.GameType, numeric(round.BetAmount), grid, round.HasWin,
		intToInt4(round.WonItemID), numeric(round.WonAmount), hi, lo, round.ForcedWin,
		strToText(round.IdempotencyKey), string(round.Status), round.Day(), round.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRound, err)
	}
	return nil
}

// UpdateWalletBalance only touches an existing row; settlement never credits a wallet it did not debit
func (t *roundTx) UpdateWalletBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := t.tx.Exec(ctx, query, userID, numeric(balance))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateWallet, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf(ErrMsgWalletMissing, userID)
	}
	return nil
}

func (t *roundTx) InsertWalletEntry(ctx context.Context, entry *domain.WalletEntry) error {
	query := `
		INSERT INTO wallet_entries (entry_id, user_id, round_id, kind, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := t.tx.Exec(ctx, query, entry.ID, entry.UserID, entry.RoundID, string(entry.Kind), numeric(entry.Amount), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWalletEntry, err)
	}
	return nil
}

func (t *roundTx) GrantItem(ctx context.Context, claim *domain.PrizeClaim) error {
	query := `
		INSERT INTO prize_claims (claim_id, user_id, item_id, round_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := t.tx.Exec(ctx, query, claim.ID, claim.UserID, claim.ItemID, claim.RoundID, string(claim.Status), claim.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGrantItem, err)
	}
	return nil
}

// UpdateLedgerIfVersion is the compare-and-swap that serialises settlements on one ledger row
func (t *roundTx) UpdateLedgerIfVersion(ctx context.Context, ledger domain.BudgetLedger, expectedVersion int64) (bool, error) {
	query := `
		UPDATE budget_ledgers
		SET total_sales = $3, total_prizes_paid = $4, alert_level = $5,
			version = version + 1, updated_at = NOW()
		WHERE game_type_id = $1 AND ledger_date = $2 AND version = $6
	`
	tag, err := t.tx.Exec(ctx, query,
		ledger.GameType, domain.LedgerDay(ledger.Day), numeric(ledger.TotalSales), numeric(ledger.TotalPrizesPaid),
		string(ledger.AlertLevel), expectedVersion)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateLedger, err)
	}
	return tag.RowsAffected() == 1, nil
}

func getWallet(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Wallet, error) {
	query := `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`
	msg := ErrMsgFailedToGetWallet
	if forUpdate {
		query += ` FOR UPDATE`
		msg = ErrMsgFailedToLockWallet
	}

	var (
		w       domain.Wallet
		balance pgtype.Numeric
	)
	err := q.QueryRow(ctx, query, userID).Scan(&w.UserID, &balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Wallet{UserID: userID, Balance: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	w.Balance = toDecimal(balance)
	return &w, nil
}

func findByKey(ctx context.Context, q querier, userID, key string) (*domain.Round, error) {
	return getRound(ctx, q, roundSelect+`WHERE r.user_id = $1 AND r.idempotency_key = $2`, userID, key)
}

func getRound(ctx context.Context, q querier, query string, args ...any) (*domain.Round, error) {
	round, err := scanRound(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoundNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRound, err)
	}
	return round, nil
}

func scanRound(row pgx.Row) (*domain.Round, error) {
	var (
		r              domain.Round
		bet, won       pgtype.Numeric
		grid           []byte
		wonItem        pgtype.Int4
		seedHi, seedLo int64
		key            pgtype.Text
		status         string
		claimID        pgtype.UUID
	)
	err := row.Scan(&r.ID, &r.UserID, &r.GameType, &bet, &grid, &r.HasWin, &wonItem,
		&won, &seedHi, &seedLo, &r.ForcedWin, &key, &status, &r.CreatedAt, &claimID)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(grid, &r.Grid); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalGrid, err)
	}
	r.BetAmount = toDecimal(bet)
	r.WonAmount = toDecimal(won)
	r.WonItemID = ptrInt(wonItem)
	r.Seed = seedFromWords(seedHi, seedLo)
	r.IdempotencyKey = key.String
	r.Status = domain.SettlementStatus(status)
	r.ClaimID = ptrUUID(claimID)
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}
