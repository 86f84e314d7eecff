package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/round"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type MockRoundService struct {
	mock.Mock
}

func (m *MockRoundService) StartRound(ctx context.Context, req round.StartRoundRequest) (*domain.RoundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundResult), args.Error(1)
}

func (m *MockRoundService) GetRound(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, userID, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRoundService) ReplayRound(ctx context.Context, roundID uuid.UUID) (*round.ReplayReport, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*round.ReplayReport), args.Error(1)
}

func (m *MockRoundService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GameType(ctx context.Context, gameTypeID string) (*domain.GameType, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameType), args.Error(1)
}

func (m *MockCatalogService) EligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EligibleItem), args.Error(1)
}

func (m *MockCatalogService) Display(ctx context.Context, gameTypeID string) (*catalog.Display, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Display), args.Error(1)
}

func (m *MockCatalogService) Invalidate(gameTypeID string) {
	m.Called(gameTypeID)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Read(ctx context.Context, game domain.GameType, day time.Time) (domain.BudgetLedger, error) {
	args := m.Called(ctx, game, day)
	return args.Get(0).(domain.BudgetLedger), args.Error(1)
}

func (m *MockLedgerService) Snapshot(ctx context.Context, gameTypeID string, day time.Time) (*ledger.Snapshot, error) {
	args := m.Called(ctx, gameTypeID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Snapshot), args.Error(1)
}

func (m *MockLedgerService) Rollover(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Reconcile(ctx context.Context, day time.Time) ([]domain.AuditAlert, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditAlert), args.Error(1)
}

func (m *MockAuditService) ListUnresolvedAlerts(ctx context.Context) ([]domain.AuditAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditAlert), args.Error(1)
}

func (m *MockAuditService) ResolveAlert(ctx context.Context, alertID uuid.UUID) error {
	return m.Called(ctx, alertID).Error(0)
}

func (m *MockAuditService) EngageEmergencyStop(ctx context.Context, gameType, reason string) error {
	return m.Called(ctx, gameType, reason).Error(0)
}

func (m *MockAuditService) ClearEmergencyStop(ctx context.Context, gameType string) error {
	return m.Called(ctx, gameType).Error(0)
}

func (m *MockAuditService) EmergencyStatus(ctx context.Context, gameType string) (*domain.EmergencyStop, error) {
	args := m.Called(ctx, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmergencyStop), args.Error(1)
}
