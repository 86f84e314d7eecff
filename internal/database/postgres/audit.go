package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// alertRankSQL orders alert levels so RaiseLedgerAlertLevel can compare them in SQL
const alertRankSQL = `ARRAY['normal', 'warning', 'critical', 'emergency']`

type auditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new PostgreSQL audit repository
func NewAuditRepository(db *pgxpool.Pool) repository.Audit {
	return &auditRepository{db: db}
}

func (r *auditRepository) ListActiveLedgers(ctx context.Context, day time.Time) ([]domain.BudgetLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM budget_ledgers WHERE ledger_date = $1 ORDER BY game_type_id`

	rows, err := r.db.Query(ctx, query, domain.LedgerDay(day))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLedgers, err)
	}
	defer rows.Close()

	var ledgers []domain.BudgetLedger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLedgers, err)
		}
		ledgers = append(ledgers, *l)
	}
	return ledgers, rows.Err()
}

// ReadReconcileSnapshot runs its three reads in one REPEATABLE READ transaction, so a
// settlement committing in between is either fully counted or not counted at all.
func (r *auditRepository) ReadReconcileSnapshot(ctx context.Context, gameType string, day time.Time) (*domain.ReconcileSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	ledger, err := getLedger(ctx, tx, gameType, day)
	if err != nil {
		return nil, err
	}
	totals, err := sumRounds(ctx, tx, gameType, day)
	if err != nil {
		return nil, err
	}
	walletNet, err := sumWalletEntries(ctx, tx, gameType, day)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return &domain.ReconcileSnapshot{Ledger: *ledger, Rounds: totals, WalletNet: walletNet}, nil
}

func sumRounds(ctx context.Context, q querier, gameType string, day time.Time) (domain.RoundTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(bet_amount), 0), COALESCE(SUM(won_amount), 0)
		FROM rounds
		WHERE game_type_id = $1 AND ledger_date = $2 AND status = $3
	`
	var (
		totals    domain.RoundTotals
		bets, won pgtype.Numeric
	)
	err := q.QueryRow(ctx, query, gameType, domain.LedgerDay(day), string(domain.SettlementCommitted)).
		Scan(&totals.Rounds, &bets, &won)
	if err != nil {
		return domain.RoundTotals{}, fmt.Errorf("%s: %w", ErrMsgFailedToSumRounds, err)
	}
	totals.Bets = toDecimal(bets)
	totals.WonAmount = toDecimal(won)
	return totals, nil
}

// sumWalletEntries returns the net journal amount of the rounds of (gameType, day)
func sumWalletEntries(ctx context.Context, q querier, gameType string, day time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM wallet_entries e
		JOIN rounds r ON r.round_id = e.round_id
		WHERE r.game_type_id = $1 AND r.ledger_date = $2
	`
	var net pgtype.Numeric
	if err := q.QueryRow(ctx, query, gameType, domain.LedgerDay(day)).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToSumWalletEntries, err)
	}
	return toDecimal(net), nil
}

const alertColumns = `alert_id, game_type_id, ledger_date, check_name, description, expected_value,
	actual_value, discrepancy, severity, resolved, created_at`

func (r *auditRepository) InsertAlert(ctx context.Context, alert *domain.AuditAlert) error {
	query := `INSERT INTO audit_alerts (` + alertColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		alert.ID, alert.GameType, domain.LedgerDay(alert.Day), alert.Check, alert.Description, numeric(alert.Expected),
		numeric(alert.Actual), numeric(alert.Discrepancy), string(alert.Severity), alert.Resolved, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertAlert, err)
	}
	return nil
}

func (r *auditRepository) FindUnresolvedAlert(ctx context.Context, gameType string, day time.Time, check string) (*domain.AuditAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM audit_alerts
		WHERE game_type_id = $1 AND ledger_date = $2 AND check_name = $3 AND NOT resolved
		ORDER BY created_at DESC
		LIMIT 1
	`
	a, err := scanAlert(r.db.QueryRow(ctx, query, gameType, domain.LedgerDay(day), check))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFindAlert, err)
	}
	return a, nil
}

func (r *auditRepository) ListUnresolvedAlerts(ctx context.Context) ([]domain.AuditAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM audit_alerts WHERE NOT resolved ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAlerts, err)
	}
	defer rows.Close()

	var alerts []domain.AuditAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAlerts, err)
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func scanAlert(row pgx.Row) (*domain.AuditAlert, error) {
	var (
		a                      domain.AuditAlert
		expected, actual, diff pgtype.Numeric
		severity               string
	)
	if err := row.Scan(&a.ID, &a.GameType, &a.Day, &a.Check, &a.Description, &expected, &actual, &diff,
		&severity, &a.Resolved, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Expected = toDecimal(expected)
	a.Actual = toDecimal(actual)
	a.Discrepancy = toDecimal(diff)
	a.Severity = domain.AlertLevel(severity)
	return &a, nil
}

// ResolveAlert returns domain.ErrAlertNotFound for unknown or already resolved alerts
func (r *auditRepository) ResolveAlert(ctx context.Context, alertID uuid.UUID) error {
	query := `UPDATE audit_alerts SET resolved = TRUE, resolved_at = NOW() WHERE alert_id = $1 AND NOT resolved`
	tag, err := r.db.Exec(ctx, query, alertID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToResolveAlert, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

// RaiseLedgerAlertLevel bumps the version too, so an in-flight settlement that read the
// lower level fails its compare-and-swap instead of writing the level back down.
func (r *auditRepository) RaiseLedgerAlertLevel(ctx context.Context, gameType string, day time.Time, level domain.AlertLevel) error {
	query := `
		UPDATE budget_ledgers
		SET alert_level = $3, version = version + 1, updated_at = NOW()
		WHERE game_type_id = $1 AND ledger_date = $2
			AND array_position(` + alertRankSQL + `, alert_level) < array_position(` + alertRankSQL + `, $3::text)
	`
	if _, err := r.db.Exec(ctx, query, gameType, domain.LedgerDay(day), string(level)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRaiseAlertLevel, err)
	}
	return nil
}

type emergencyRepository struct {
	db *pgxpool.Pool
}

// NewEmergencyRepository creates a new PostgreSQL emergency stop repository
func NewEmergencyRepository(db *pgxpool.Pool) repository.Emergency {
	return &emergencyRepository{db: db}
}

func (r *emergencyRepository) IsEmergencyStopped(ctx context.Context, gameType string) (bool, error) {
	stop, err := r.GetEmergencyStop(ctx, gameType)
	if err != nil {
		return false, err
	}
	return stop.Engaged, nil
}

// GetEmergencyStop reports a disengaged breaker for game types that never had one
func (r *emergencyRepository) GetEmergencyStop(ctx context.Context, gameType string) (*domain.EmergencyStop, error) {
	query := `SELECT game_type_id, engaged, reason, updated_at FROM emergency_stops WHERE game_type_id = $1`

	var stop domain.EmergencyStop
	err := r.db.QueryRow(ctx, query, gameType).Scan(&stop.GameType, &stop.Engaged, &stop.Reason, &stop.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.EmergencyStop{GameType: gameType}, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEmergencyStop, err)
	}
	return &stop, nil
}

func (r *emergencyRepository) SetEmergencyStop(ctx context.Context, gameType, reason string) error {
	query := `
		INSERT INTO emergency_stops (game_type_id, engaged, reason)
		VALUES ($1, TRUE, $2)
		ON CONFLICT (game_type_id) DO UPDATE
		SET engaged = TRUE, reason = EXCLUDED.reason, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, gameType, reason); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetEmergencyStop, err)
	}
	return nil
}

func (r *emergencyRepository) ClearEmergencyStop(ctx context.Context, gameType string) error {
	query := `UPDATE emergency_stops SET engaged = FALSE, reason = '', updated_at = NOW() WHERE game_type_id = $1`
	if _, err := r.db.Exec(ctx, query, gameType); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClearEmergencyStop, err)
	}
	return nil
}
