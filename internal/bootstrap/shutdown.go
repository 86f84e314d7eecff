package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/round"
	"github.com/osse101/PrizeGrid_Go/internal/scheduler"
	"github.com/osse101/PrizeGrid_Go/internal/server"
	"github.com/osse101/PrizeGrid_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	RoundService       round.Service
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new rounds)
// 2. Scheduler and worker pool (no new rollover or audit runs)
// 3. Round service (wait for in-flight post-settlement publishing)
// 4. Event publisher (flush pending events)
//
// Errors are logged and do not stop the sequence. Nil components are skipped.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgStoppingScheduler)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.RoundService != nil {
		shutdownService(ctx, ServiceNameRound, components.RoundService)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
