package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// Display is what a player sees of a game type: its price and every symbol that can appear.
// Weights and eligibility stay server side.
type Display struct {
	GameType domain.GameType `json:"game_type"`
	Items    []domain.Item   `json:"items"`
}

// Service reads game types and their items. Display reads are cached;
// anything used to decide a round reads through to the repository.
type Service interface {
	// GameType returns a playable game type, or domain.ErrInvalidGameType
	GameType(ctx context.Context, gameTypeID string) (*domain.GameType, error)
	// EligibleItems returns the fresh eligibility view used by the draw
	EligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error)
	// Display returns the cached display catalog, loading it on a miss
	Display(ctx context.Context, gameTypeID string) (*Display, error)
	Invalidate(gameTypeID string)
}

type service struct {
	repo  repository.Catalog
	cache *displayCache
}

// Config controls the display cache
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog, cfg Config) Service {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: newDisplayCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

func (s *service) GameType(ctx context.Context, gameTypeID string) (*domain.GameType, error) {
	if gameTypeID == "" {
		return nil, domain.ErrInvalidGameType
	}
	g, err := s.repo.GetGameType(ctx, gameTypeID)
	if errors.Is(err, domain.ErrGameTypeNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGameType, gameTypeID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetGameTypeFailed, err)
	}
	if !g.Playable() {
		logger.FromContext(ctx).Debug(LogMsgInvalidState, logger.AttrKeyGameType, gameTypeID, "active", g.Active, "price", g.Price.String())
		return nil, fmt.Errorf("%w: %s is not playable", domain.ErrInvalidGameType, gameTypeID)
	}
	return g, nil
}

func (s *service) EligibleItems(ctx context.Context, gameTypeID string) ([]domain.EligibleItem, error) {
	items, err := s.repo.ListEligibleItems(ctx, gameTypeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListItemsFailed, err)
	}
	return items, nil
}

func (s *service) Display(ctx context.Context, gameTypeID string) (*Display, error) {
	log := logger.FromContext(ctx)
	if d, ok := s.cache.Get(gameTypeID); ok {
		log.Debug(LogMsgCacheHit, logger.AttrKeyGameType, gameTypeID)
		return d, nil
	}
	log.Debug(LogMsgCacheMiss, logger.AttrKeyGameType, gameTypeID)

	g, err := s.GameType(ctx, gameTypeID)
	if err != nil {
		return nil, err
	}
	eligible, err := s.EligibleItems(ctx, gameTypeID)
	if err != nil {
		return nil, err
	}

	d := &Display{GameType: *g, Items: DisplayItems(eligible)}
	s.cache.Set(gameTypeID, d)
	return d, nil
}

func (s *service) Invalidate(gameTypeID string) {
	s.cache.Invalidate(gameTypeID)
	logger.Debug(LogMsgInvalidated, logger.AttrKeyGameType, gameTypeID)
}

// DisplayItems strips eligibility from the catalog, keeping every linked item once, ordered by id.
// Inactive and zero-weight links stay in as display-only fillers.
func DisplayItems(eligible []domain.EligibleItem) []domain.Item {
	seen := make(map[int]bool, len(eligible))
	items := make([]domain.Item, 0, len(eligible))
	for _, e := range eligible {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		items = append(items, e.Item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
