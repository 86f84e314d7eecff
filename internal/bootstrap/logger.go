package bootstrap

import (
	"log/slog"

	"github.com/osse101/PrizeGrid_Go/internal/config"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

// SetupLogger installs the process-wide logger from the app config and logs the startup banner.
// Source positions are only added in dev.
func SetupLogger(cfg *config.Config) {
	addSource := cfg.Environment == logger.EnvironmentDev || cfg.Environment == "development"

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	slog.Info(LogMsgStartingPrizeGrid,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"currency", cfg.Currency,
		"locale", cfg.Locale)
}
