package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build reads
const ExpectedEnvSchemaVersion = "1.0"

// MinJWTSecretLength is the HS256 key size below which ValidateEnvWithWarnings complains
const MinJWTSecretLength = 32

// Placeholders shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"JWT_SECRET",
}

// envWarning flags a setting that boots but should not reach production
type envWarning struct {
	applies func() bool
	message string
}

var envWarnings = []envWarning{
	{
		applies: func() bool { return os.Getenv("DB_PASSWORD") == exampleDBPassword },
		message: "DB_PASSWORD is the example value; set a real password",
	},
	{
		applies: func() bool { return os.Getenv("API_KEY") == exampleAPIKey },
		message: "API_KEY is the example value; generate one with: openssl rand -hex 32",
	},
	{
		applies: func() bool { return len(os.Getenv("JWT_SECRET")) < MinJWTSecretLength },
		message: fmt.Sprintf("JWT_SECRET is shorter than %d bytes; player tokens are easy to forge", MinJWTSecretLength),
	},
	{
		applies: func() bool {
			return strings.EqualFold(os.Getenv("ENVIRONMENT"), "prod") && os.Getenv("PAYOUT_TIERS_JSON") == ""
		},
		message: "PAYOUT_TIERS_JSON is not set; production runs on the built-in payout tiers",
	},
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s); compare your .env with .env.example", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, name := range RequiredEnvVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then lists settings that are legal but unsafe
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.applies() {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
