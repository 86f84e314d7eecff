package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/audit"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/scheduler"
	"github.com/osse101/PrizeGrid_Go/internal/server"
)

// ScheduleJobs registers the ledger rollover, the audit reconciliation and the limiter sweep
func ScheduleJobs(sched *scheduler.Scheduler, svc *Services, limiter *server.UserRateLimiter, auditInterval time.Duration) error {
	if _, err := sched.ScheduleCron(ledger.RolloverCronSpec, ledger.NewRolloverJob(svc.Ledger)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedScheduleRollover, err)
	}
	sched.Schedule(auditInterval, audit.NewReconcileJob(svc.Audit))
	sched.Schedule(LimiterSweepInterval, server.NewLimiterSweepJob(limiter, server.DefaultLimiterIdleTime))

	slog.Info(LogMsgJobsScheduled,
		"rollover_cron", ledger.RolloverCronSpec,
		"audit_interval", auditInterval,
		"limiter_sweep_interval", LimiterSweepInterval)
	return nil
}
