package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

var testGame = &domain.GameType{
	ID:             "grid-050",
	Name:           "Grid 0,50",
	Price:          decimal.RequireFromString("0.50"),
	Active:         true,
	CapMultiplier:  decimal.NewFromInt(5),
	PrizeBudgetPct: decimal.RequireFromString("0.20"),
}

func eligible(id int, weight float64) domain.EligibleItem {
	return domain.EligibleItem{
		Item:   domain.Item{ID: id, Name: "item", Value: decimal.NewFromInt(int64(id)), Category: domain.CategoryCash},
		Weight: weight,
		Active: true,
	}
}

func TestGameType(t *testing.T) {
	inactive := *testGame
	inactive.Active = false
	free := *testGame
	free.Price = decimal.Zero

	tests := []struct {
		name    string
		id      string
		setup   func(*MockRepository)
		wantErr error
	}{
		{name: "playable", id: "grid-050", setup: func(r *MockRepository) {
			r.On("GetGameType", mock.Anything, "grid-050").Return(testGame, nil)
		}},
		{name: "empty id", id: "", setup: func(r *MockRepository) {}, wantErr: domain.ErrInvalidGameType},
		{name: "unknown", id: "nope", setup: func(r *MockRepository) {
			r.On("GetGameType", mock.Anything, "nope").Return(nil, domain.ErrGameTypeNotFound)
		}, wantErr: domain.ErrInvalidGameType},
		{name: "inactive", id: "old", setup: func(r *MockRepository) {
			r.On("GetGameType", mock.Anything, "old").Return(&inactive, nil)
		}, wantErr: domain.ErrInvalidGameType},
		{name: "zero price", id: "free", setup: func(r *MockRepository) {
			r.On("GetGameType", mock.Anything, "free").Return(&free, nil)
		}, wantErr: domain.ErrInvalidGameType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(repo)
			svc := NewService(repo, Config{})

			g, err := svc.GameType(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "grid-050", g.ID)
		})
	}
}

func TestDisplay_CachesAndInvalidates(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetGameType", mock.Anything, "grid-050").Return(testGame, nil)
	repo.On("ListEligibleItems", mock.Anything, "grid-050").
		Return([]domain.EligibleItem{eligible(3, 1), eligible(1, 0), eligible(2, 5)}, nil)
	svc := NewService(repo, Config{CacheSize: 4, CacheTTL: time.Minute})

	first, err := svc.Display(context.Background(), "grid-050")
	require.NoError(t, err)
	second, err := svc.Display(context.Background(), "grid-050")
	require.NoError(t, err)

	assert.Same(t, first, second)
	repo.AssertNumberOfCalls(t, "ListEligibleItems", 1)
	require.Len(t, first.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{first.Items[0].ID, first.Items[1].ID, first.Items[2].ID})

	svc.Invalidate("grid-050")
	_, err = svc.Display(context.Background(), "grid-050")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListEligibleItems", 2)
}

func TestEligibleItems_AlwaysFresh(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListEligibleItems", mock.Anything, "grid-050").Return([]domain.EligibleItem{eligible(1, 1)}, nil)
	svc := NewService(repo, Config{})

	for i := 0; i < 3; i++ {
		_, err := svc.EligibleItems(context.Background(), "grid-050")
		require.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "ListEligibleItems", 3)
}

func TestDisplayCache_Expires(t *testing.T) {
	c := newDisplayCache(2, 20*time.Millisecond)
	c.Set("grid-050", &Display{GameType: *testGame})

	_, ok := c.Get("grid-050")
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("grid-050")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestDisplayCache_DropsOldSchema(t *testing.T) {
	c := newDisplayCache(2, time.Minute)
	c.lru.Add("grid-050", &cachedDisplay{Version: "0.9", Display: &Display{}})

	_, ok := c.Get("grid-050")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestDisplayItems_Dedupes(t *testing.T) {
	items := DisplayItems([]domain.EligibleItem{eligible(2, 1), eligible(2, 1), eligible(1, 1)})
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
}

func TestDisplayItems_KeepsInactiveLinksAsFillers(t *testing.T) {
	retired := eligible(3, 1)
	retired.Active = false
	filler := eligible(4, 0)

	items := DisplayItems([]domain.EligibleItem{retired, eligible(1, 1), filler})

	require.Len(t, items, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{items[0].ID, items[1].ID, items[2].ID})
	assert.False(t, retired.Drawable())
}
