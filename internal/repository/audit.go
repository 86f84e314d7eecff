package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// Audit defines the reads and writes of the reconciliation job
type Audit interface {
	// ListActiveLedgers returns every ledger row for day
	ListActiveLedgers(ctx context.Context, day time.Time) ([]domain.BudgetLedger, error)
	// ReadReconcileSnapshot reads the ledger of (gameType, day), its committed round
	// sums and the net wallet journal of those rounds from one consistent snapshot.
	// Returns domain.ErrLedgerNotFound for a day that has not been opened.
	ReadReconcileSnapshot(ctx context.Context, gameType string, day time.Time) (*domain.ReconcileSnapshot, error)
	// FindUnresolvedAlert returns the newest open alert for (gameType, day, check)
	// or domain.ErrAlertNotFound
	FindUnresolvedAlert(ctx context.Context, gameType string, day time.Time, check string) (*domain.AuditAlert, error)
	InsertAlert(ctx context.Context, alert *domain.AuditAlert) error
	ListUnresolvedAlerts(ctx context.Context) ([]domain.AuditAlert, error)
	ResolveAlert(ctx context.Context, alertID uuid.UUID) error
	// RaiseLedgerAlertLevel never lowers the stored level
	RaiseLedgerAlertLevel(ctx context.Context, gameType string, day time.Time, level domain.AlertLevel) error
}

// Emergency persists the per game type circuit breaker
type Emergency interface {
	IsEmergencyStopped(ctx context.Context, gameType string) (bool, error)
	GetEmergencyStop(ctx context.Context, gameType string) (*domain.EmergencyStop, error)
	SetEmergencyStop(ctx context.Context, gameType, reason string) error
	ClearEmergencyStop(ctx context.Context, gameType string) error
}

// Ledger covers ledger access outside settlement
type Ledger interface {
	// GetLedger returns domain.ErrLedgerNotFound for a day that has not been opened
	GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error)
	// OpenDay creates the ledger for (gameType, day). With carryForward the previous
	// day's positive remaining budget becomes the new day's CarriedOver.
	OpenDay(ctx context.Context, gameType string, day time.Time, prizeBudgetPct decimal.Decimal, carryForward bool) (*domain.BudgetLedger, error)
}
