package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizeGrid_Go/internal/bootstrap"
	"github.com/osse101/PrizeGrid_Go/internal/config"
	"github.com/osse101/PrizeGrid_Go/internal/database"
)

// connect loads the app config, installs the logger and opens a small pool
func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	bootstrap.SetupLogger(cfg)

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:        2,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Connected", "db", cfg.DBName)
	return cfg, pool, nil
}

// services wires the engine without an event bus; events are only logged by the server process
func services(cfg *config.Config, pool *pgxpool.Pool) (*bootstrap.Services, error) {
	return bootstrap.InitializeServices(cfg, bootstrap.InitializeRepositories(pool), nil)
}
