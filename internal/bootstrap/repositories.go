package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizeGrid_Go/internal/database/postgres"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Catalog   repository.Catalog
	Ledger    repository.Ledger
	Round     repository.Round
	Audit     repository.Audit
	Emergency repository.Emergency
}

// InitializeRepositories creates the Postgres repositories over one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Catalog:   postgres.NewCatalogRepository(dbPool),
		Ledger:    postgres.NewLedgerRepository(dbPool),
		Round:     postgres.NewRoundRepository(dbPool),
		Audit:     postgres.NewAuditRepository(dbPool),
		Emergency: postgres.NewEmergencyRepository(dbPool),
	}
}
