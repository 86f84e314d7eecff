package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// Config holds the reconciliation thresholds
type Config struct {
	Tolerance      decimal.Decimal
	CriticalAbove  decimal.Decimal
	EmergencyAbove decimal.Decimal
	Now            func() time.Time
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		Tolerance:      DefaultTolerance,
		CriticalAbove:  DefaultCriticalAbove,
		EmergencyAbove: DefaultEmergencyAbove,
		Now:            time.Now,
	}
}

// Severity classifies a discrepancy
func (c Config) Severity(discrepancy decimal.Decimal) domain.AlertLevel {
	switch {
	case discrepancy.GreaterThan(c.EmergencyAbove):
		return domain.AlertEmergency
	case discrepancy.GreaterThan(c.CriticalAbove):
		return domain.AlertCritical
	default:
		return domain.AlertWarning
	}
}

// Service reconciles ledgers against settled rounds and manages the emergency stop
type Service interface {
	// Reconcile audits every ledger of day and returns the alerts it raised
	Reconcile(ctx context.Context, day time.Time) ([]domain.AuditAlert, error)
	ListUnresolvedAlerts(ctx context.Context) ([]domain.AuditAlert, error)
	ResolveAlert(ctx context.Context, alertID uuid.UUID) error
	EngageEmergencyStop(ctx context.Context, gameType, reason string) error
	ClearEmergencyStop(ctx context.Context, gameType string) error
	EmergencyStatus(ctx context.Context, gameType string) (*domain.EmergencyStop, error)
}

type service struct {
	repo      repository.Audit
	emergency repository.Emergency
	publisher event.Publisher
	cfg       Config
}

// NewService creates a new audit service. publisher may be nil.
func NewService(repo repository.Audit, emergency repository.Emergency, publisher event.Publisher, cfg Config) Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		repo:      repo,
		emergency: emergency,
		publisher: publisher,
		cfg:       cfg,
	}
}

// check is one expected/actual comparison of a reconciliation
type check struct {
	name     string
	expected decimal.Decimal
	actual   decimal.Decimal
}

func (c check) discrepancy() decimal.Decimal {
	return c.expected.Sub(c.actual).Abs()
}

func (s *service) Reconcile(ctx context.Context, day time.Time) ([]domain.AuditAlert, error) {
	log := logger.FromContext(ctx)
	day = domain.LedgerDay(day)

	ledgers, err := s.repo.ListActiveLedgers(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListLedgersFailed, err)
	}
	log.Debug(LogMsgReconcileStarted, "day", day.Format(time.DateOnly), "ledgers", len(ledgers))

	var alerts []domain.AuditAlert
	var errs []error
	for _, l := range ledgers {
		alert, err := s.reconcileLedger(ctx, l)
		if err != nil {
			log.Error(LogMsgReconcileFailed, logger.AttrKeyGameType, l.GameType, "error", err)
			errs = append(errs, err)
			continue
		}
		if alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	log.Info(LogMsgReconcileFinished, "day", day.Format(time.DateOnly), "ledgers", len(ledgers), "alerts", len(alerts))
	return alerts, errors.Join(errs...)
}

func (s *service) reconcileLedger(ctx context.Context, l domain.BudgetLedger) (*domain.AuditAlert, error) {
	snap, err := s.repo.ReadReconcileSnapshot(ctx, l.GameType, l.Day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSnapshotFailed, err)
	}
	ledger, totals := snap.Ledger, snap.Rounds

	checks := []check{
		{name: CheckSales, expected: ledger.TotalSales, actual: totals.Bets},
		{name: CheckPrizes, expected: ledger.TotalPrizesPaid, actual: totals.WonAmount},
		{name: CheckWallets, expected: totals.WonAmount.Sub(totals.Bets), actual: snap.WalletNet},
	}

	worst := checks[0]
	var failed []string
	for _, c := range checks {
		d := c.discrepancy()
		if d.GreaterThan(s.cfg.Tolerance) {
			failed = append(failed, fmt.Sprintf("%s off by %s", c.name, d.StringFixed(2)))
		}
		if d.GreaterThan(worst.discrepancy()) {
			worst = c
		}
	}
	if len(failed) == 0 {
		return nil, nil
	}

	severity := s.cfg.Severity(worst.discrepancy())
	open, err := s.repo.FindUnresolvedAlert(ctx, ledger.GameType, ledger.Day, worst.name)
	switch {
	case errors.Is(err, domain.ErrAlertNotFound):
	case err != nil:
		return nil, fmt.Errorf("%s: %w", ErrMsgFindAlertFailed, err)
	case domain.MaxAlertLevel(open.Severity, severity) == open.Severity:
		// still reported by the open alert; a new row is only written on escalation
		logger.FromContext(ctx).Debug(LogMsgAlertAlreadyOpen,
			logger.AttrKeyGameType, ledger.GameType,
			"check", worst.name,
			"alert_id", open.ID)
		return nil, nil
	}

	alert := &domain.AuditAlert{
		ID:          uuid.New(),
		GameType:    ledger.GameType,
		Day:         ledger.Day,
		Check:       worst.name,
		Description: fmt.Sprintf("%d rounds: %s", totals.Rounds, strings.Join(failed, ", ")),
		Expected:    worst.expected,
		Actual:      worst.actual,
		Discrepancy: worst.discrepancy(),
		Severity:    severity,
		CreatedAt:   s.cfg.Now().UTC(),
	}
	if err := s.raise(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// raise stores the alert and applies its effects
func (s *service) raise(ctx context.Context, alert *domain.AuditAlert) error {
	log := logger.FromContext(ctx)
	log.Error(LogMsgDiscrepancyFound,
		logger.AttrKeyGameType, alert.GameType,
		"check", alert.Check,
		"severity", alert.Severity,
		"discrepancy", alert.Discrepancy.String(),
		"description", alert.Description)

	if err := s.repo.InsertAlert(ctx, alert); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertAlertFailed, err)
	}
	if err := s.repo.RaiseLedgerAlertLevel(ctx, alert.GameType, alert.Day, alert.Severity); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRaiseLevelFailed, err)
	}
	s.publish(ctx, event.NewAuditAlertEvent(alert))

	if alert.Severity == domain.AlertEmergency {
		reason := fmt.Sprintf("%s: %s", ReasonAuditEmergency, alert.Description)
		return s.EngageEmergencyStop(ctx, alert.GameType, reason)
	}
	return nil
}

func (s *service) ListUnresolvedAlerts(ctx context.Context) ([]domain.AuditAlert, error) {
	alerts, err := s.repo.ListUnresolvedAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListAlertsFailed, err)
	}
	return alerts, nil
}

func (s *service) ResolveAlert(ctx context.Context, alertID uuid.UUID) error {
	if err := s.repo.ResolveAlert(ctx, alertID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgResolveAlertFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgAlertResolved, "alert_id", alertID)
	return nil
}

func (s *service) EngageEmergencyStop(ctx context.Context, gameType, reason string) error {
	if gameType == "" {
		return errors.New(ErrMsgEmptyGameType)
	}
	if err := s.emergency.SetEmergencyStop(ctx, gameType, reason); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetEmergencyFailed, err)
	}
	logger.FromContext(ctx).Error(LogMsgEmergencyEngaged, logger.AttrKeyGameType, gameType, "reason", reason)
	s.publish(ctx, event.NewEmergencyEvent(event.EmergencyEngaged, gameType, reason))
	return nil
}

func (s *service) ClearEmergencyStop(ctx context.Context, gameType string) error {
	if gameType == "" {
		return errors.New(ErrMsgEmptyGameType)
	}
	if err := s.emergency.ClearEmergencyStop(ctx, gameType); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgClearEmergencyFailed, err)
	}
	logger.FromContext(ctx).Warn(LogMsgEmergencyCleared, logger.AttrKeyGameType, gameType)
	s.publish(ctx, event.NewEmergencyEvent(event.EmergencyCleared, gameType, ""))
	return nil
}

func (s *service) EmergencyStatus(ctx context.Context, gameType string) (*domain.EmergencyStop, error) {
	return s.emergency.GetEmergencyStop(ctx, gameType)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
