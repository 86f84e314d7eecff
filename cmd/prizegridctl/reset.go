package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/PrizeGrid_Go/internal/config"
	"github.com/osse101/PrizeGrid_Go/internal/database"
	"github.com/osse101/PrizeGrid_Go/migrations"
)

const confirmYes = "yes"

// ResetCommand drops and recreates the database, then applies migrations. Refused in production.
type ResetCommand struct{}

func (c *ResetCommand) Name() string        { return "reset" }
func (c *ResetCommand) Description() string { return "Drop, recreate and migrate the database (-confirm yes)" }

func (c *ResetCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	confirm := fs.String("confirm", "", `must be "yes"`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *confirm != confirmYes {
		return errors.New(`refusing to reset without -confirm yes`)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Environment == "prod" || cfg.Environment == "production" {
		return errors.New("reset is disabled in production")
	}

	ctx := context.Background()
	if err := recreate(ctx, cfg); err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()
	return database.Migrate(ctx, pool, migrations.FS)
}

// recreate connects to the maintenance database to drop and create cfg.DBName
func recreate(ctx context.Context, cfg *config.Config) error {
	u, err := url.Parse(cfg.GetDBConnString())
	if err != nil {
		return err
	}
	u.Path = "/postgres"

	conn, err := pgx.Connect(ctx, u.String())
	if err != nil {
		return fmt.Errorf("connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	name := pgx.Identifier{cfg.DBName}.Sanitize()

	if _, err := conn.Exec(ctx,
		`SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()`,
		cfg.DBName); err != nil {
		slog.Warn("Failed to terminate connections", "error", err)
	}
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	slog.Info("Database recreated", "db", cfg.DBName)
	return nil
}
