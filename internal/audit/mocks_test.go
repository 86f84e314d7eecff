package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
)

// MockAuditRepo implements repository.Audit for testing
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) ListActiveLedgers(ctx context.Context, day time.Time) ([]domain.BudgetLedger, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetLedger), args.Error(1)
}

func (m *MockAuditRepo) ReadReconcileSnapshot(ctx context.Context, gameType string, day time.Time) (*domain.ReconcileSnapshot, error) {
	args := m.Called(ctx, gameType, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileSnapshot), args.Error(1)
}

func (m *MockAuditRepo) FindUnresolvedAlert(ctx context.Context, gameType string, day time.Time, check string) (*domain.AuditAlert, error) {
	args := m.Called(ctx, gameType, day, check)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditAlert), args.Error(1)
}

func (m *MockAuditRepo) InsertAlert(ctx context.Context, alert *domain.AuditAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAuditRepo) ListUnresolvedAlerts(ctx context.Context) ([]domain.AuditAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditAlert), args.Error(1)
}

func (m *MockAuditRepo) ResolveAlert(ctx context.Context, alertID uuid.UUID) error {
	args := m.Called(ctx, alertID)
	return args.Error(0)
}

func (m *MockAuditRepo) RaiseLedgerAlertLevel(ctx context.Context, gameType string, day time.Time, level domain.AlertLevel) error {
	args := m.Called(ctx, gameType, day, level)
	return args.Error(0)
}

// MockEmergencyRepo implements repository.Emergency for testing
type MockEmergencyRepo struct {
	mock.Mock
}

func (m *MockEmergencyRepo) IsEmergencyStopped(ctx context.Context, gameType string) (bool, error) {
	args := m.Called(ctx, gameType)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmergencyRepo) GetEmergencyStop(ctx context.Context, gameType string) (*domain.EmergencyStop, error) {
	args := m.Called(ctx, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmergencyStop), args.Error(1)
}

func (m *MockEmergencyRepo) SetEmergencyStop(ctx context.Context, gameType, reason string) error {
	args := m.Called(ctx, gameType, reason)
	return args.Error(0)
}

func (m *MockEmergencyRepo) ClearEmergencyStop(ctx context.Context, gameType string) error {
	args := m.Called(ctx, gameType)
	return args.Error(0)
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

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
