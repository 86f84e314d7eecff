package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults
const (
	DefaultPort        = 8080
	DefaultEnvironment = "dev"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "prize-grid"
	DefaultVersion     = "dev"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10

	DefaultSettlementMaxRetries = 5
	DefaultAuditInterval        = 5 * time.Minute
	DefaultCatalogCacheSize     = 256
	DefaultCatalogCacheTTL      = 5 * time.Minute

	DefaultWorkerCount     = 2
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"
	DefaultShutdownTimeout = 15 * time.Second

	DefaultCurrency = "BRL"
	DefaultLocale   = "pt-BR"
)

// Audit thresholds in price units
var (
	DefaultAuditTolerance      = decimal.RequireFromString("0.01")
	DefaultAuditCriticalAbove  = decimal.NewFromInt(100)
	DefaultAuditEmergencyAbove = decimal.NewFromInt(1000)
)

// Error messages
const (
	ErrMsgAPIKeyRequired       = "API_KEY environment variable must be set for security"
	ErrMsgJWTSecretRequired    = "JWT_SECRET environment variable must be set to verify player tokens"
	ErrMsgInvalidSettingFormat = "invalid %s value: %v"
	ErrMsgAuditThresholdOrder  = "AUDIT_EMERGENCY_ABOVE must be greater than AUDIT_CRITICAL_ABOVE"
)
