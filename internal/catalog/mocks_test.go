package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// MockRepository implements repository.Catalog for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetGameType(ctx context.Context, gameTypeID string) (*domain.GameType, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameType), args.Error(1)
}

func (m *MockRepository) ListGameTypes(ctx context.Context) ([]domain.GameType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameType), args.Error(1)
}

func (m *MockRepository) ListEligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error) {
	args := m.Called(ctx, gameTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EligibleItem), args.Error(1)
}
