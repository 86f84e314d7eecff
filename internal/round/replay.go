package round

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

// ReplayReport compares a stored grid with the one its seed produces today.
// A mismatch after a catalog edit is expected; the filler pool is read from the current catalog.
type ReplayReport struct {
	RoundID    uuid.UUID        `json:"round_id"`
	Seed       domain.RoundSeed `json:"seed"`
	Match      bool             `json:"match"`
	Mismatched []int            `json:"mismatched_cells,omitempty"`
	Stored     domain.Grid      `json:"stored"`
	Replayed   domain.Grid      `json:"replayed"`
}

func (s *service) ReplayRound(ctx context.Context, roundID uuid.UUID) (*ReplayReport, error) {
	r, err := s.rounds.GetRound(ctx, roundID)
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRoundFailed, err)
	}

	items, err := s.catalog.EligibleItems(ctx, r.GameType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalogFailed, err)
	}

	var wonItem *domain.Item
	if r.HasWin {
		wonItem = storedWonItem(r, items)
	}

	replayed, err := s.synthesize(ctx, r.HasWin, wonItem, catalog.DisplayItems(items), r.Seed)
	if err != nil {
		return nil, err
	}

	report := &ReplayReport{
		RoundID:  r.ID,
		Seed:     r.Seed,
		Stored:   r.Grid,
		Replayed: replayed,
	}
	for i := range r.Grid.Cells {
		a, b := r.Grid.Cells[i], replayed.Cells[i]
		if a.ItemID != b.ItemID || a.IsWinning != b.IsWinning {
			report.Mismatched = append(report.Mismatched, i)
		}
	}
	report.Match = len(report.Mismatched) == 0
	if !report.Match {
		logger.FromContext(ctx).Warn(LogMsgReplayMismatch, logger.AttrKeyRoundID, r.ID, "cells", report.Mismatched)
	}
	return report, nil
}

// storedWonItem prefers the current catalog entry and falls back to the winning cell snapshot
func storedWonItem(r *domain.Round, items []domain.EligibleItem) *domain.Item {
	if r.WonItemID != nil {
		for _, it := range items {
			if it.ID == *r.WonItemID {
				item := it.Item
				return &item
			}
		}
	}
	for _, c := range r.Grid.Cells {
		if c.IsWinning {
			return &domain.Item{ID: c.ItemID, Name: c.Name, ImageRef: c.ImageRef, Rarity: c.Rarity, Value: c.Value}
		}
	}
	return nil
}
