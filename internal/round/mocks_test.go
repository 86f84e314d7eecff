package round

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/payout"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
	"github.com/osse101/PrizeGrid_Go/internal/settlement"
)

// MockCatalog implements catalog.Service for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GameType(ctx context.Context, gameTypeID string) (*domain.GameType, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameType), args.Error(1)
}

func (m *MockCatalog) EligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EligibleItem), args.Error(1)
}

func (m *MockCatalog) Display(ctx context.Context, gameTypeID string) (*catalog.Display, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Display), args.Error(1)
}

func (m *MockCatalog) Invalidate(gameTypeID string) {
	m.Called(gameTypeID)
}

// MockRoundRepo implements repository.Round for testing
type MockRoundRepo struct {
	mock.Mock
}

func (m *MockRoundRepo) BeginRoundTx(ctx context.Context) (repository.RoundTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.RoundTx), args.Error(1)
}

func (m *MockRoundRepo) GetRound(ctx context.Context, roundID uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRoundRepo) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRoundRepo) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockRoundRepo) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	args := m.Called(ctx, gameType, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLedger), args.Error(1)
}

// MockEmergency implements repository.Emergency for testing
type MockEmergency struct {
	mock.Mock
}

func (m *MockEmergency) IsEmergencyStopped(ctx context.Context, gameType string) (bool, error) {
	args := m.Called(ctx, gameType)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmergency) GetEmergencyStop(ctx context.Context, gameType string) (*domain.EmergencyStop, error) {
	args := m.Called(ctx, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmergencyStop), args.Error(1)
}

func (m *MockEmergency) SetEmergencyStop(ctx context.Context, gameType, reason string) error {
	return m.Called(ctx, gameType, reason).Error(0)
}

func (m *MockEmergency) ClearEmergencyStop(ctx context.Context, gameType string) error {
	return m.Called(ctx, gameType).Error(0)
}

// MockLedger implements ledger.Service for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Read(ctx context.Context, game domain.GameType, day time.Time) (domain.BudgetLedger, error) {
	args := m.Called(ctx, game, day)
	return args.Get(0).(domain.BudgetLedger), args.Error(1)
}

func (m *MockLedger) Snapshot(ctx context.Context, gameTypeID string, day time.Time) (*ledger.Snapshot, error) {
	args := m.Called(ctx, gameTypeID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Snapshot), args.Error(1)
}

func (m *MockLedger) Rollover(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

// MockSettler implements settlement.Settler for testing
type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) Settle(ctx context.Context, req settlement.Request) (*settlement.Result, error) {
	args := m.Called(ctx, req)
	if fn, ok := args.Get(0).(func(settlement.Request) (*settlement.Result, error)); ok {
		return fn(req)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Result), args.Error(1)
}

// fixedController returns the same probability for every round and delegates
// eligibility to a real controller decision
type fixedController struct {
	p float64
}

func (c fixedController) Decide(game domain.GameType, l domain.BudgetLedger, stopped bool) payout.Decision {
	d := payout.NewController(payout.DefaultConfig()).Decide(game, l, stopped)
	if !stopped {
		d.WinProbability = c.p
	}
	return d
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

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
