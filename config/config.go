package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Session configuration
	JWTSecret string

	// Shared secret for the development bootstrap endpoint
	SetupToken string

	// Email configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string

	// Frontend base URL used in email links and CORS
	FrontendURL string
}

// LoadConfig creates a new Config instance. Values come from environment
// variables, falling back to Docker secrets and then to development
// defaults. Production refuses to run on the defaults (see validation).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "server_port", "8080"),
		ServerHost: getValue("SERVER_HOST", "server_host", "0.0.0.0"),

		DBHost:     getValue("DB_HOST", "db_host", "localhost"),
		DBPort:     getValue("DB_PORT", "db_port", "5432"),
		DBUser:     getValue("DB_USER", "db_user", "postgres"),
		DBPassword: getValue("DB_PASSWORD", "db_password", "postgres"),
		DBName:     getValue("DB_NAME", "db_name", "launchbase"),
		DBSSLMode:  getValue("DB_SSL_MODE", "db_ssl_mode", "disable"),

		RedisHost:     getValue("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", "redis_password", ""),
		RedisDB:       0,
		RedisURL:      getValue("REDIS_URL", "redis_url", "redis://localhost:6379"),

		JWTSecret:  getValue("JWT_SECRET", "jwt_secret", "your-secret-key"),
		SetupToken: getValue("SETUP_TOKEN", "setup_token", ""),

		SMTPHost:      getValue("SMTP_HOST", "smtp_host", ""),
		SMTPPort:      getValue("SMTP_PORT", "smtp_port", ""),
		SMTPUsername:  getValue("SMTP_USERNAME", "smtp_username", ""),
		SMTPPassword:  getValue("SMTP_PASSWORD", "smtp_password", ""),
		EmailFrom:     getValue("EMAIL_FROM", "email_from", "noreply@launchbase.dev"),
		EmailFromName: getValue("EMAIL_FROM_NAME", "email_from_name", "Launchbase"),

		FrontendURL: getValue("FRONTEND_URL", "frontend_url", "http://localhost:5173"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getValue resolves a configuration value: environment variable first,
// then Docker secret, then default.
func getValue(envVar, secret, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
