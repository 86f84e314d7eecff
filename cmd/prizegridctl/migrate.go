package main

import (
	"context"

	"github.com/osse101/PrizeGrid_Go/internal/database"
	"github.com/osse101/PrizeGrid_Go/migrations"
)

// MigrateCommand applies the embedded migrations
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string        { return "migrate" }
func (c *MigrateCommand) Description() string { return "Apply pending database migrations" }

func (c *MigrateCommand) Run(_ []string) error {
	ctx := context.Background()
	_, pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	return database.Migrate(ctx, pool, migrations.FS)
}
