package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
)

// MockCatalog implements repository.Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetGameType(ctx context.Context, gameTypeID string) (*domain.GameType, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameType), args.Error(1)
}

func (m *MockCatalog) ListGameTypes(ctx context.Context) ([]domain.GameType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameType), args.Error(1)
}

func (m *MockCatalog) ListEligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EligibleItem), args.Error(1)
}

// MockLedgerRepo implements repository.Ledger for testing
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	args := m.Called(ctx, gameType, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLedger), args.Error(1)
}

func (m *MockLedgerRepo) OpenDay(ctx context.Context, gameType string, day time.Time, pct decimal.Decimal, carryForward bool) (*domain.BudgetLedger, error) {
	args := m.Called(ctx, gameType, day, pct, carryForward)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLedger), args.Error(1)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}
