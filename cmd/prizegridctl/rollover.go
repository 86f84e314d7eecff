package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// RolloverCommand opens the ledgers of a day, today by default
type RolloverCommand struct{}

func (c *RolloverCommand) Name() string        { return "rollover" }
func (c *RolloverCommand) Description() string { return "Open budget ledgers for a UTC day (-day YYYY-MM-DD)" }

func (c *RolloverCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	dayFlag := fs.String("day", "", "UTC day, defaults to today")
	if err := fs.Parse(args); err != nil {
		return err
	}
	day, err := parseDay(*dayFlag, time.Now())
	if err != nil {
		return err
	}

	ctx := context.Background()
	cfg, pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc, err := services(cfg, pool)
	if err != nil {
		return err
	}
	opened, err := svc.Ledger.Rollover(ctx, day)
	if err != nil {
		return err
	}
	slog.Info("Rollover complete", "day", day.Format(time.DateOnly), "opened", opened)
	return nil
}

// parseDay reads YYYY-MM-DD as a UTC day; empty means the day of now
func parseDay(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return domain.LedgerDay(now), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -day %q: %w", raw, err)
	}
	return day, nil
}
