package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// Round defines persistence for settled rounds and the state they touch
type Round interface {
	BeginRoundTx(ctx context.Context) (RoundTx, error)
	GetRound(ctx context.Context, roundID uuid.UUID) (*domain.Round, error)
	// FindRoundByIdempotencyKey returns domain.ErrRoundNotFound when the key is unused
	FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error)
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	// GetLedger returns domain.ErrLedgerNotFound before the day's first settlement or rollover
	GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error)
}

// RoundTx is the single transaction a round settles in
type RoundTx interface {
	Tx
	// GetWalletForUpdate locks the wallet row. A missing wallet reads as balance 0.
	GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error)
	FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error)
	// EnsureLedger creates the (game type, day) ledger row if it does not exist yet
	EnsureLedger(ctx context.Context, gameType string, day time.Time, prizeBudgetPct decimal.Decimal) error
	GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error)
	InsertRound(ctx context.Context, round *domain.Round) error
	UpdateWalletBalance(ctx context.Context, userID string, balance decimal.Decimal) error
	InsertWalletEntry(ctx context.Context, entry *domain.WalletEntry) error
	GrantItem(ctx context.Context, claim *domain.PrizeClaim) error
	// UpdateLedgerIfVersion writes ledger and bumps its version only if the stored
	// version still equals expectedVersion. It reports whether the row was updated.
	UpdateLedgerIfVersion(ctx context.Context, ledger domain.BudgetLedger, expectedVersion int64) (bool, error)
}
