package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PrizeGrid_Go/internal/audit"
	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/config"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/payout"
	"github.com/osse101/PrizeGrid_Go/internal/round"
	"github.com/osse101/PrizeGrid_Go/internal/settlement"
)

// Services holds the application services handed to the server and the scheduler
type Services struct {
	Catalog catalog.Service
	Ledger  ledger.Service
	Audit   audit.Service
	Rounds  round.Service
}

// InitializeServices builds the engine from the repositories and the config.
// It fails only on a malformed PAYOUT_TIERS_JSON or an unsupported currency/locale.
func InitializeServices(cfg *config.Config, repos *Repositories, publisher event.Publisher) (*Services, error) {
	tiers, err := payout.ParseTiers(cfg.PayoutTiersJSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPayoutTiers, err)
	}

	formatter, err := round.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidFormatter, err)
	}

	catalogService := catalog.NewService(repos.Catalog, catalog.Config{
		CacheSize: cfg.CatalogCacheSize,
		CacheTTL:  cfg.CatalogCacheTTL,
	})
	ledgerService := ledger.NewService(repos.Catalog, repos.Ledger, publisher, cfg.LedgerCarryForward)
	auditService := audit.NewService(repos.Audit, repos.Emergency, publisher, audit.Config{
		Tolerance:      cfg.AuditTolerance,
		CriticalAbove:  cfg.AuditCriticalAbove,
		EmergencyAbove: cfg.AuditEmergencyAbove,
	})

	roundService := round.NewService(round.Dependencies{
		Catalog:    catalogService,
		Rounds:     repos.Round,
		Emergency:  repos.Emergency,
		Ledger:     ledgerService,
		Controller: payout.NewController(tiers),
		Settler:    settlement.NewSettler(repos.Round, settlement.Config{MaxRetries: cfg.SettlementMaxRetries}),
		Publisher:  publisher,
		Formatter:  formatter,
	})

	slog.Info(LogMsgServicesInitialized,
		"settlement_max_retries", cfg.SettlementMaxRetries,
		"carry_forward", cfg.LedgerCarryForward,
		"custom_tiers", cfg.PayoutTiersJSON != "")

	return &Services{
		Catalog: catalogService,
		Ledger:  ledgerService,
		Audit:   auditService,
		Rounds:  roundService,
	}, nil
}
