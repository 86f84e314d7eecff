package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the application configuration
type Config struct {
	Port        int // range is checked when the listener binds
	Environment string
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	AutoMigrate       bool

	APIKey         string // admin endpoints
	JWTSecret      string // player bearer tokens
	TrustedProxies []string
	RateLimitRPS   float64
	RateLimitBurst int

	SettlementMaxRetries int
	PayoutTiersJSON      string // empty keeps the built-in tiers

	AuditInterval       time.Duration
	AuditTolerance      decimal.Decimal
	AuditCriticalAbove  decimal.Decimal
	AuditEmergencyAbove decimal.Decimal
	LedgerCarryForward  bool

	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	WorkerCount     int
	EventMaxRetries int
	EventRetryDelay time.Duration
	DeadLetterPath  string
	ShutdownTimeout time.Duration

	Currency string
	Locale   string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "prizegrid"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", true),

		APIKey:         getEnv("API_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),

		SettlementMaxRetries: getEnvAsInt("SETTLEMENT_MAX_RETRIES", DefaultSettlementMaxRetries),
		PayoutTiersJSON:      getEnv("PAYOUT_TIERS_JSON", ""),

		AuditInterval:       getEnvAsDuration("AUDIT_INTERVAL", DefaultAuditInterval),
		AuditTolerance:      getEnvAsDecimal("AUDIT_TOLERANCE", DefaultAuditTolerance),
		AuditCriticalAbove:  getEnvAsDecimal("AUDIT_CRITICAL_ABOVE", DefaultAuditCriticalAbove),
		AuditEmergencyAbove: getEnvAsDecimal("AUDIT_EMERGENCY_ABOVE", DefaultAuditEmergencyAbove),
		LedgerCarryForward:  getEnvAsBool("LEDGER_CARRY_FORWARD", false),

		CatalogCacheSize: getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		Currency: strings.ToUpper(getEnv("CURRENCY", DefaultCurrency)),
		Locale:   getEnv("LOCALE", DefaultLocale),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate reports every invalid setting at once
func (c *Config) validate() error {
	var errs []error

	if c.APIKey == "" {
		errs = append(errs, errors.New(ErrMsgAPIKeyRequired))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New(ErrMsgJWTSecretRequired))
	}
	if c.SettlementMaxRetries < 1 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "SETTLEMENT_MAX_RETRIES", c.SettlementMaxRetries))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "RATE_LIMIT_RPS", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "RATE_LIMIT_BURST", c.RateLimitBurst))
	}
	if c.AuditInterval <= 0 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "AUDIT_INTERVAL", c.AuditInterval))
	}
	if c.AuditTolerance.IsNegative() {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "AUDIT_TOLERANCE", c.AuditTolerance))
	}
	if !c.AuditEmergencyAbove.GreaterThan(c.AuditCriticalAbove) {
		errs = append(errs, errors.New(ErrMsgAuditThresholdOrder))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "WORKER_COUNT", c.WorkerCount))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidSettingFormat, "CURRENCY", c.Currency))
	}

	return errors.Join(errs...)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to the default for unset or malformed values
func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings such as "30s" or "5m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsDecimal keeps money settings exact
func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v, err := decimal.NewFromString(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
