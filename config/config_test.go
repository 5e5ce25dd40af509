package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func devConfig() *Config {
	return &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "launchbase",
		JWTSecret:  "your-secret-key",
		SetupToken: "dev-setup-token",
	}
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	// CI detection wins over ENV.
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestValidateConfigDevelopmentDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")

	assert.NoError(t, ValidateConfig(devConfig()))
}

func TestValidateConfigIncomplete(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")

	cfg := devConfig()
	cfg.DBHost = ""
	assert.Error(t, ValidateConfig(cfg))

	cfg = devConfig()
	cfg.ServerPort = ""
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")

	// Development defaults are refused.
	err := ValidateConfig(devConfig())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "SETUP_TOKEN")

	cfg := devConfig()
	cfg.JWTSecret = "a-real-production-secret"
	cfg.DBPassword = "a-real-db-password"
	cfg.SetupToken = ""
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "launchbase", cfg.DBName)
	assert.NotEmpty(t, cfg.FrontendURL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_NAME", "override_db")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "override_db", cfg.DBName)
}
