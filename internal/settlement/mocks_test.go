package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// MockRepository implements repository.Round for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginRoundTx(ctx context.Context) (repository.RoundTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.RoundTx), args.Error(1)
}

func (m *MockRepository) GetRound(ctx context.Context, roundID uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRepository) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockRepository) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	args := m.Called(ctx, gameType, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLedger), args.Error(1)
}

// MockTx implements repository.RoundTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockTx) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockTx) EnsureLedger(ctx context.Context, gameType string, day time.Time, prizeBudgetPct decimal.Decimal) error {
	args := m.Called(ctx, gameType, day, prizeBudgetPct)
	return args.Error(0)
}

func (m *MockTx) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	args := m.Called(ctx, gameType, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLedger), args.Error(1)
}

func (m *MockTx) InsertRound(ctx context.Context, round *domain.Round) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockTx) UpdateWalletBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	args := m.Called(ctx, userID, balance)
	return args.Error(0)
}

func (m *MockTx) InsertWalletEntry(ctx context.Context, entry *domain.WalletEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTx) GrantItem(ctx context.Context, claim *domain.PrizeClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockTx) UpdateLedgerIfVersion(ctx context.Context, ledger domain.BudgetLedger, expectedVersion int64) (bool, error) {
	args := m.Called(ctx, ledger, expectedVersion)
	return args.Bool(0), args.Error(1)
}
