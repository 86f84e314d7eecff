package settlement

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/metrics"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// Request is a fully decided round waiting to be committed
type Request struct {
	UserID         string
	Game           domain.GameType
	Grid           domain.Grid
	HasWin         bool
	WonItem        *domain.Item
	Seed           domain.RoundSeed
	ForcedWin      bool
	IdempotencyKey string
}

// WonAmount is what the round adds to totalPrizesPaid. Physical prizes are
// delivered as claims and carry no cash amount.
func (r Request) WonAmount() decimal.Decimal {
	if r.HasWin && r.WonItem != nil && r.WonItem.IsCash() {
		return r.WonItem.Value
	}
	return decimal.Zero
}

// Result of a settlement
type Result struct {
	Round      *domain.Round
	NewBalance decimal.Decimal
	Ledger     domain.BudgetLedger // ledger after the round; zero on replays
	Replayed   bool
	Attempts   int
}

// Config tunes the optimistic retry loop
type Config struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	Now         func() time.Time
}

// Settler commits rounds atomically
type Settler interface {
	// Settle debits the stake, pays the prize, records the round and updates the
	// ledger in one transaction. It returns domain.ErrInsufficientFunds,
	// domain.ErrBudgetExceeded or domain.ErrSettlementConflict without persisting anything.
	Settle(ctx context.Context, req Request) (*Result, error)
}

type settler struct {
	repo repository.Round
	cfg  Config
}

// NewSettler creates a settler over the round repository
func NewSettler(repo repository.Round, cfg Config) Settler {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = DefaultBaseBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = DefaultMaxBackoff
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &settler{repo: repo, cfg: cfg}
}

func (s *settler) Settle(ctx context.Context, req Request) (*Result, error) {
	log := logger.FromContext(ctx)

	if req.UserID == "" || req.Game.ID == "" {
		return nil, errors.New(ErrMsgInvalidRequest)
	}
	if req.HasWin && req.WonItem == nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidRequest, domain.ErrInvalidGrid)
	}

	start := time.Now()
	defer func() {
		metrics.SettlementDuration.WithLabelValues(req.Game.ID).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		res, err := s.attempt(ctx, req)
		if err == nil {
			res.Attempts = attempt
			return res, nil
		}

		if errors.Is(err, domain.ErrDuplicateRound) {
			return s.committedRound(ctx, req)
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}

		lastErr = err
		metrics.SettlementConflicts.WithLabelValues(req.Game.ID).Inc()
		log.Warn(LogMsgVersionConflict, logger.AttrKeyGameType, req.Game.ID, "attempt", attempt)

		if attempt < s.cfg.MaxRetries {
			if err := s.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	log.Error(LogMsgSettlementExhausted, logger.AttrKeyGameType, req.Game.ID, "attempts", s.cfg.MaxRetries, "error", lastErr)
	return nil, fmt.Errorf("%w: %d attempts", domain.ErrSettlementConflict, s.cfg.MaxRetries)
}

// attempt runs one settlement transaction. Every return path before Commit rolls back.
func (s *settler) attempt(ctx context.Context, req Request) (*Result, error) {
	tx, err := s.repo.BeginRoundTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	wallet, err := tx.GetWalletForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLockWalletFailed, err)
	}

	if req.IdempotencyKey != "" {
		existing, err := tx.FindRoundByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
		if err != nil && !errors.Is(err, domain.ErrRoundNotFound) {
			return nil, fmt.Errorf("%s: %w", ErrMsgIdempotencyLookup, err)
		}
		if existing != nil {
			return replayResult(ctx, req, existing, wallet.Balance)
		}
	}

	price := req.Game.Price
	if wallet.Balance.LessThan(price) {
		return nil, domain.ErrInsufficientFunds
	}

	now := s.cfg.Now().UTC()
	day := domain.LedgerDay(now)
	if err := tx.EnsureLedger(ctx, req.Game.ID, day, req.Game.PrizeBudgetPct); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEnsureLedgerFailed, err)
	}
	ledger, err := tx.GetLedger(ctx, req.Game.ID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadLedgerFailed, err)
	}

	// an overdrawn ledger still takes sales; only cash payouts are capped
	wonAmount := req.WonAmount()
	if wonAmount.IsPositive() && wonAmount.GreaterThan(ledger.Projected(price).RemainingBudget()) {
		return nil, domain.ErrBudgetExceeded
	}

	round := &domain.Round{
		ID:             uuid.New(),
		UserID:         req.UserID,
		GameType:       req.Game.ID,
		BetAmount:      price,
		Grid:           req.Grid,
		HasWin:         req.HasWin,
		WonAmount:      wonAmount,
		Seed:           req.Seed,
		ForcedWin:      req.ForcedWin,
		IdempotencyKey: req.IdempotencyKey,
		Status:         domain.SettlementCommitted,
		CreatedAt:      now,
	}
	if req.HasWin {
		id := req.WonItem.ID
		round.WonItemID = &id
	}

	var claim *domain.PrizeClaim
	if req.HasWin && !req.WonItem.IsCash() {
		claim = &domain.PrizeClaim{
			ID:        uuid.New(),
			UserID:    req.UserID,
			ItemID:    req.WonItem.ID,
			RoundID:   round.ID,
			Status:    domain.ClaimPending,
			CreatedAt: now,
		}
		round.ClaimID = &claim.ID
	}

	if err := tx.InsertRound(ctx, round); err != nil {
		if errors.Is(err, domain.ErrDuplicateRound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgInsertRoundFailed, err)
	}

	balance := wallet.Balance.Sub(price)
	if err := tx.InsertWalletEntry(ctx, newEntry(round, domain.EntryDebit, price.Neg(), now)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgJournalFailed, err)
	}
	if wonAmount.IsPositive() {
		balance = balance.Add(wonAmount)
		if err := tx.InsertWalletEntry(ctx, newEntry(round, domain.EntryCredit, wonAmount, now)); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgJournalFailed, err)
		}
	}
	if claim != nil {
		if err := tx.GrantItem(ctx, claim); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGrantItemFailed, err)
		}
	}
	if err := tx.UpdateWalletBalance(ctx, req.UserID, balance); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateWalletFailed, err)
	}

	settled := ledger.Settled(price, wonAmount)
	updated, err := tx.UpdateLedgerIfVersion(ctx, settled, ledger.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateLedgerFailed, err)
	}
	if !updated {
		return nil, domain.ErrVersionConflict
	}
	settled.Version = ledger.Version + 1

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgSettled,
		logger.AttrKeyRoundID, round.ID,
		logger.AttrKeyGameType, round.GameType,
		"has_win", round.HasWin,
		"won_amount", wonAmount.String(),
		"alert_level", settled.AlertLevel)

	return &Result{Round: round, NewBalance: balance, Ledger: settled}, nil
}

// committedRound resolves a lost idempotency race by reading what the winner committed
func (s *settler) committedRound(ctx context.Context, req Request) (*Result, error) {
	existing, err := s.repo.FindRoundByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgIdempotencyLookup, err)
	}
	wallet, err := s.repo.GetWallet(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadWalletFailed, err)
	}
	return replayResult(ctx, req, existing, wallet.Balance)
}

func replayResult(ctx context.Context, req Request, existing *domain.Round, balance decimal.Decimal) (*Result, error) {
	if existing.GameType != req.Game.ID {
		return nil, domain.ErrIdempotencyMismatch
	}
	logger.FromContext(ctx).Info(LogMsgIdempotentReplay, logger.AttrKeyRoundID, existing.ID, "key", req.IdempotencyKey)
	return &Result{Round: existing, NewBalance: balance, Replayed: true, Attempts: 1}, nil
}

func newEntry(round *domain.Round, kind domain.EntryKind, amount decimal.Decimal, at time.Time) *domain.WalletEntry {
	return &domain.WalletEntry{
		ID:        uuid.New(),
		UserID:    round.UserID,
		RoundID:   round.ID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: at,
	}
}

// backoff sleeps for a jittered, capped exponential delay
func (s *settler) backoff(ctx context.Context, attempt int) error {
	d := s.cfg.BaseBackoff << (attempt - 1)
	if d > s.cfg.MaxBackoff || d <= 0 {
		d = s.cfg.MaxBackoff
	}
	d = d/2 + time.Duration(rand.Int64N(int64(d/2)+1)) //nolint:gosec // Jitter only

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
