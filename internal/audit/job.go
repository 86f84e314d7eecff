package audit

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// lateWindow is how long after midnight the previous day is reconciled once more,
// so rounds that settled just before the rollover are covered
const lateWindow = time.Hour

// ReconcileJob runs the reconciliation from the worker pool
type ReconcileJob struct {
	svc Service
	now func() time.Time
}

// NewReconcileJob creates the job
func NewReconcileJob(svc Service) *ReconcileJob {
	return &ReconcileJob{svc: svc, now: time.Now}
}

// Name implements worker.Named
func (j *ReconcileJob) Name() string { return JobNameReconcile }

// Process implements worker.Job
func (j *ReconcileJob) Process(ctx context.Context) error {
	now := j.now().UTC()
	today := domain.LedgerDay(now)

	var errs []error
	if now.Sub(today) < lateWindow {
		if _, err := j.svc.Reconcile(ctx, today.AddDate(0, 0, -1)); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := j.svc.Reconcile(ctx, today); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
