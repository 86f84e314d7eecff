package ledger

import (
	"context"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// RolloverJob opens the current UTC day's ledgers when run by the worker pool
type RolloverJob struct {
	svc Service
	now func() time.Time
}

// NewRolloverJob creates the job
func NewRolloverJob(svc Service) *RolloverJob {
	return &RolloverJob{svc: svc, now: time.Now}
}

// Name implements worker.Named
func (j *RolloverJob) Name() string { return JobNameRollover }

// Process implements worker.Job
func (j *RolloverJob) Process(ctx context.Context) error {
	_, err := j.svc.Rollover(ctx, domain.LedgerDay(j.now()))
	return err
}
