package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"time"
)

// AuditCommand runs one reconciliation and prints the alerts it raised as JSON
type AuditCommand struct {
	out io.Writer
}

func (c *AuditCommand) Name() string        { return "audit" }
func (c *AuditCommand) Description() string { return "Reconcile ledgers against settled rounds (-day YYYY-MM-DD)" }

func (c *AuditCommand) Run(args []string) error {
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
	alerts, err := svc.Audit.Reconcile(ctx, day)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(alerts)
}
