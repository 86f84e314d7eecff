package round

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/grid"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/metrics"
	"github.com/osse101/PrizeGrid_Go/internal/payout"
	"github.com/osse101/PrizeGrid_Go/internal/prize"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
	"github.com/osse101/PrizeGrid_Go/internal/settlement"
	"github.com/osse101/PrizeGrid_Go/internal/utils"
)

// StartRoundRequest is a player's request to play one round
type StartRoundRequest struct {
	UserID         string
	GameType       string
	ForcedWin      bool
	Operator       bool // caller holds the operator role; required for ForcedWin
	IdempotencyKey string
}

// Service defines the interface for playing and inspecting rounds
type Service interface {
	StartRound(ctx context.Context, req StartRoundRequest) (*domain.RoundResult, error)
	// GetRound returns a committed round owned by userID
	GetRound(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error)
	// ReplayRound rebuilds a round's grid from its stored seed and outcome
	ReplayRound(ctx context.Context, roundID uuid.UUID) (*ReplayReport, error)
	Shutdown(ctx context.Context) error
}

// Dependencies groups what the round service needs
type Dependencies struct {
	Catalog    catalog.Service
	Rounds     repository.Round
	Emergency  repository.Emergency
	Ledger     ledger.Service
	Controller payout.Controller
	Settler    settlement.Settler
	Publisher  event.Publisher
	Formatter  *Formatter
}

type service struct {
	catalog    catalog.Service
	rounds     repository.Round
	emergency  repository.Emergency
	ledger     ledger.Service
	controller payout.Controller
	settler    settlement.Settler
	publisher  event.Publisher
	formatter  *Formatter

	newSeed func() (domain.RoundSeed, error)
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewService creates a new round service
func NewService(deps Dependencies) Service {
	f := deps.Formatter
	if f == nil {
		f, _ = NewFormatter(DefaultLocale, DefaultCurrency)
	}
	return &service{
		catalog:    deps.Catalog,
		rounds:     deps.Rounds,
		emergency:  deps.Emergency,
		ledger:     deps.Ledger,
		controller: deps.Controller,
		settler:    deps.Settler,
		publisher:  deps.Publisher,
		formatter:  f,
		newSeed:    utils.NewSeed,
		now:        time.Now,
	}
}

func (s *service) StartRound(ctx context.Context, req StartRoundRequest) (*domain.RoundResult, error) {
	log := logger.FromContext(ctx)

	if req.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if req.ForcedWin && !req.Operator {
		return nil, domain.ErrForcedWinForbidden
	}

	game, err := s.catalog.GameType(ctx, req.GameType)
	if err != nil {
		return nil, err
	}
	log = log.With(logger.AttrKeyUserID, req.UserID, logger.AttrKeyGameType, game.ID)

	if req.IdempotencyKey != "" {
		if res, err := s.replayByKey(ctx, req, game); res != nil || err != nil {
			return res, err
		}
	}

	// a failed lookup plays as stopped
	stopped, err := s.emergency.IsEmergencyStopped(ctx, game.ID)
	if err != nil {
		log.Error(LogMsgEmergencyCheckFail, "error", err)
		stopped = true
	}

	items, err := s.catalog.EligibleItems(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	if !anyActive(items) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoEligibleCatalog, game.ID)
	}
	fillers := catalog.DisplayItems(items)

	wallet, err := s.rounds.GetWallet(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadWalletFailed, err)
	}
	if wallet.Balance.LessThan(game.Price) {
		return nil, domain.ErrInsufficientFunds
	}

	current, err := s.ledger.Read(ctx, *game, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadLedgerFailed, err)
	}
	decision := s.controller.Decide(*game, current.Projected(game.Price), stopped)
	metrics.WinProbability.WithLabelValues(game.ID).Observe(decision.WinProbability)

	seed, err := s.newSeed()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSeedFailed, err)
	}
	rng := utils.NewStreamRNG(seed, utils.StreamDraw)

	// the draw is always consumed so the stream position does not depend on the override
	drawn := rng.Float64() < decision.WinProbability
	forced := req.ForcedWin && !decision.EmergencyStopped
	if forced {
		log.Info(LogMsgForcedWin)
	}
	hasWin := drawn || forced

	var wonItem *domain.Item
	if hasWin {
		picked, err := prize.Select(decision.Filter(items), rng)
		if err != nil {
			log.Info(LogMsgWinDemoted, "reason", metrics.DemotedNoEligible)
			metrics.RoundsDemoted.WithLabelValues(game.ID, metrics.DemotedNoEligible).Inc()
			hasWin = false
		} else {
			wonItem = &picked.Item
		}
	}

	log.Debug(LogMsgRoundStarted,
		"probability", decision.WinProbability,
		"margin", decision.Margin,
		"remaining_budget", decision.RemainingBudget.String(),
		"has_win", hasWin,
		"forced", forced)

	settleReq := settlement.Request{
		UserID:         req.UserID,
		Game:           *game,
		HasWin:         hasWin,
		WonItem:        wonItem,
		Seed:           seed,
		ForcedWin:      forced,
		IdempotencyKey: req.IdempotencyKey,
	}
	if settleReq.Grid, err = s.synthesize(ctx, hasWin, wonItem, fillers, seed); err != nil {
		return nil, err
	}

	res, err := s.settler.Settle(ctx, settleReq)
	if errors.Is(err, domain.ErrBudgetExceeded) {
		log.Info(LogMsgWinDemoted, "reason", metrics.DemotedBudgetExceeded)
		metrics.RoundsDemoted.WithLabelValues(game.ID, metrics.DemotedBudgetExceeded).Inc()
		settleReq.HasWin = false
		settleReq.WonItem = nil
		if settleReq.Grid, err = s.synthesize(ctx, false, nil, fillers, seed); err != nil {
			return nil, err
		}
		res, err = s.settler.Settle(ctx, settleReq)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrSettlementConflict) ||
			errors.Is(err, domain.ErrIdempotencyMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgSettleFailed, err)
	}

	if !res.Replayed {
		s.publish(ctx, event.NewRoundSettledEvent(res.Round))
		log.Info(LogMsgRoundSettled,
			logger.AttrKeyRoundID, res.Round.ID,
			"has_win", res.Round.HasWin,
			"won_amount", res.Round.WonAmount.String(),
			"attempts", res.Attempts)
	}
	return s.result(res.Round, res.NewBalance, res.Replayed, wonItemName(res.Round)), nil
}

// replayByKey returns the committed round for an idempotency key, or nil when the key is unused
func (s *service) replayByKey(ctx context.Context, req StartRoundRequest, game *domain.GameType) (*domain.RoundResult, error) {
	existing, err := s.rounds.FindRoundByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
	if errors.Is(err, domain.ErrRoundNotFound) || (err == nil && existing == nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgIdempotencyLookup, err)
	}
	if existing.GameType != game.ID {
		return nil, domain.ErrIdempotencyMismatch
	}
	wallet, err := s.rounds.GetWallet(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadWalletFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgRoundReplayed, logger.AttrKeyRoundID, existing.ID, "key", req.IdempotencyKey)
	return s.result(existing, wallet.Balance, true, wonItemName(existing)), nil
}

func (s *service) synthesize(ctx context.Context, hasWin bool, wonItem *domain.Item, fillers []domain.Item, seed domain.RoundSeed) (domain.Grid, error) {
	g, err := grid.Synthesize(hasWin, wonItem, fillers, utils.NewStreamRNG(seed, utils.StreamGrid))
	if err != nil {
		return domain.Grid{}, fmt.Errorf("%s: %w", ErrMsgSynthesizeFailed, err)
	}
	if g.Relaxed {
		logger.FromContext(ctx).Warn(LogMsgRelaxedGrid, "fillers", len(fillers))
	}
	return g, nil
}

func (s *service) result(r *domain.Round, balance decimal.Decimal, replayed bool, prizeName string) *domain.RoundResult {
	return &domain.RoundResult{
		RoundID:          r.ID,
		Symbols:          r.Grid.Cells,
		WonItemID:        r.WonItemID,
		HasWin:           r.HasWin,
		WonAmount:        r.WonAmount,
		NewWalletBalance: balance,
		Replayed:         replayed,
		Message:          s.formatter.Message(r.HasWin, prizeName, r.WonAmount, balance),
	}
}

func (s *service) GetRound(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	r, err := s.rounds.GetRound(ctx, roundID)
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRoundFailed, err)
	}
	// other players' rounds are indistinguishable from missing ones
	if r.UserID != userID {
		return nil, domain.ErrRoundNotFound
	}
	return r, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.publisher.PublishWithRetry(context.WithoutCancel(ctx), evt)
	}()
}

// Shutdown waits for in-flight event publishes
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func anyActive(items []domain.EligibleItem) bool {
	for _, it := range items {
		if it.Active {
			return true
		}
	}
	return false
}

// wonItemName reads the prize name from the round's winning cells
func wonItemName(r *domain.Round) string {
	for _, c := range r.Grid.Cells {
		if c.IsWinning {
			return c.Name
		}
	}
	return ""
}
