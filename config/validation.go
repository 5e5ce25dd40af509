package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Development defaults that must never reach production.
var unsafeProductionValues = map[string]string{
	"JWT_SECRET":  "your-secret-key",
	"DB_PASSWORD": "postgres",
}

// ValidateConfig checks the configuration against the requirements of
// the current environment. Development and test run on defaults;
// production requires real secrets and refuses the setup token since the
// bootstrap endpoint is development-only.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
		errors = append(errors, "database configuration (DB_HOST, DB_NAME, DB_USER) is incomplete")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT is required")
	}

	if env == Production {
		if cfg.JWTSecret == "" || cfg.JWTSecret == unsafeProductionValues["JWT_SECRET"] {
			errors = append(errors, "JWT_SECRET must be set to a real secret in production")
		}
		if cfg.DBPassword == "" || cfg.DBPassword == unsafeProductionValues["DB_PASSWORD"] {
			errors = append(errors, "DB_PASSWORD must be set to a real secret in production")
		}
		if cfg.SetupToken != "" {
			errors = append(errors, "SETUP_TOKEN must not be set in production; the bootstrap endpoint is development-only")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
