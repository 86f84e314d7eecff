// @title PrizeGrid API
// @version 1.0
// @description 3x3 prize-grid game engine with budget-aware payouts.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/auth"
	"github.com/osse101/PrizeGrid_Go/internal/bootstrap"
	"github.com/osse101/PrizeGrid_Go/internal/config"
	"github.com/osse101/PrizeGrid_Go/internal/database"
	"github.com/osse101/PrizeGrid_Go/internal/scheduler"
	"github.com/osse101/PrizeGrid_Go/internal/server"
	"github.com/osse101/PrizeGrid_Go/internal/worker"
	"github.com/osse101/PrizeGrid_Go/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("PrizeGrid exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	bootstrap.SetupLogger(cfg)
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, dbPool, migrations.FS); err != nil {
			return err
		}
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.RegisterEventHandlers(bus); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	svc, err := bootstrap.InitializeServices(cfg, repos, publisher)
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, server.Services{
		DBPool:   dbPool,
		Verifier: auth.NewVerifier(cfg.JWTSecret),
		Rounds:   svc.Rounds,
		Catalog:  svc.Catalog,
		Ledger:   svc.Ledger,
		Audit:    svc.Audit,
	})

	pool := worker.NewPool(cfg.WorkerCount, bootstrap.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	if err := bootstrap.ScheduleJobs(sched, svc, srv.Limiter(), cfg.AuditInterval); err != nil {
		pool.Stop()
		return err
	}
	sched.Start()

	// Make sure today's ledgers exist before the first round
	if _, err := svc.Ledger.Rollover(ctx, time.Now()); err != nil {
		slog.Warn("Initial ledger rollover failed", "error", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		RoundService:       svc.Rounds,
		ResilientPublisher: publisher,
	})
	return err
}
