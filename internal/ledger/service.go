package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// Snapshot is a ledger together with its derived figures, as shown to operators
type Snapshot struct {
	domain.BudgetLedger
	Opened          bool            `json:"opened"`
	Budget          decimal.Decimal `json:"budget"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	BankBalance     decimal.Decimal `json:"bank_balance"`
	Margin          float64         `json:"margin"`
}

// Service reads budget ledgers and opens new days. Settlement is the only other writer.
type Service interface {
	// Read returns the ledger of (game, day). A day that has not been opened reads
	// as an empty ledger at the game's budget share.
	Read(ctx context.Context, game domain.GameType, day time.Time) (domain.BudgetLedger, error)
	Snapshot(ctx context.Context, gameTypeID string, day time.Time) (*Snapshot, error)
	// Rollover opens day's ledger for every playable game type and returns how many it opened
	Rollover(ctx context.Context, day time.Time) (int, error)
}

type service struct {
	catalog      repository.Catalog
	repo         repository.Ledger
	publisher    event.Publisher
	carryForward bool
}

// NewService creates a new ledger service. publisher may be nil.
func NewService(catalog repository.Catalog, repo repository.Ledger, publisher event.Publisher, carryForward bool) Service {
	return &service{
		catalog:      catalog,
		repo:         repo,
		publisher:    publisher,
		carryForward: carryForward,
	}
}

func (s *service) Read(ctx context.Context, game domain.GameType, day time.Time) (domain.BudgetLedger, error) {
	l, _, err := s.read(ctx, game, day)
	return l, err
}

func (s *service) read(ctx context.Context, game domain.GameType, day time.Time) (domain.BudgetLedger, bool, error) {
	day = domain.LedgerDay(day)
	l, err := s.repo.GetLedger(ctx, game.ID, day)
	if errors.Is(err, domain.ErrLedgerNotFound) {
		return emptyLedger(game, day), false, nil
	}
	if err != nil {
		return domain.BudgetLedger{}, false, fmt.Errorf("%s: %w", ErrMsgReadLedgerFailed, err)
	}
	return *l, true, nil
}

func (s *service) Snapshot(ctx context.Context, gameTypeID string, day time.Time) (*Snapshot, error) {
	game, err := s.catalog.GetGameType(ctx, gameTypeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetGameTypeFailed, err)
	}
	l, opened, err := s.read(ctx, *game, day)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		BudgetLedger:    l,
		Opened:          opened,
		Budget:          l.Budget(),
		RemainingBudget: l.RemainingBudget(),
		BankBalance:     l.BankBalance(),
		Margin:          l.Margin(),
	}, nil
}

func (s *service) Rollover(ctx context.Context, day time.Time) (int, error) {
	log := logger.FromContext(ctx)
	day = domain.LedgerDay(day)
	log.Info(LogMsgRolloverStarted, "day", day.Format(time.DateOnly), "carry_forward", s.carryForward)

	games, err := s.catalog.ListGameTypes(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgListGameTypesFailed, err)
	}

	opened := 0
	var errs []error
	for _, g := range games {
		if !g.Playable() {
			continue
		}
		l, err := s.repo.OpenDay(ctx, g.ID, day, g.PrizeBudgetPct, s.carryForward)
		if err != nil {
			log.Error(LogMsgRolloverFailed, logger.AttrKeyGameType, g.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s %s: %w", ErrMsgOpenDayFailed, g.ID, err))
			continue
		}
		opened++
		log.Debug(LogMsgRolloverOpened, logger.AttrKeyGameType, g.ID, "carried_over", l.CarriedOver.String())
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLedgerRolloverEvent(day, opened, s.carryForward))
	}
	log.Info(LogMsgRolloverFinished, "opened", opened, "failed", len(errs))
	return opened, errors.Join(errs...)
}

func emptyLedger(game domain.GameType, day time.Time) domain.BudgetLedger {
	return domain.BudgetLedger{
		GameType:        game.ID,
		Day:             day,
		TotalSales:      decimal.Zero,
		TotalPrizesPaid: decimal.Zero,
		CarriedOver:     decimal.Zero,
		PrizeBudgetPct:  game.PrizeBudgetPct,
		AlertLevel:      domain.AlertNormal,
	}
}
