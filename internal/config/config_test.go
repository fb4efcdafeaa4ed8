// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SERVER_PORT", "LOG_LEVEL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "JWT_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD", "DAILY_CLICK_LIMIT", "CLICK_REWARD",
	"MIN_WITHDRAWAL", "REWARD_TIMEZONE", "CORS_ALLOWED_ORIGINS", "TX_MAX_RETRIES",
}

// clearEnv blanks every variable LoadConfig reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "admin@bannerearn.com", cfg.AdminEmail)
	assert.Equal(t, "Admin@123", cfg.AdminPassword)
	assert.Equal(t, 50, cfg.Policy.DailyClickLimit)
	assert.True(t, cfg.Policy.ClickReward.Equal(decimal.NewFromInt(1)))
	assert.True(t, cfg.Policy.MinimumWithdrawal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, time.UTC, cfg.Policy.Location)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3, cfg.TxMaxRetries)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DAILY_CLICK_LIMIT", "10")
	t.Setenv("CLICK_REWARD", "2")
	t.Setenv("MIN_WITHDRAWAL", "500")
	t.Setenv("REWARD_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.Policy.DailyClickLimit)
	assert.True(t, cfg.Policy.ClickReward.Equal(decimal.NewFromInt(2)))
	assert.True(t, cfg.Policy.MinimumWithdrawal.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Asia/Kolkata", cfg.Policy.Location.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "abc"},
		{"JWT_TTL", "forever"},
		{"DAILY_CLICK_LIMIT", "0"},
		{"CLICK_REWARD", "one"},
		{"MIN_WITHDRAWAL", "-5"},
		{"REWARD_TIMEZONE", "Mars/Olympus"},
		{"TX_MAX_RETRIES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()

			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=7070\nDAILY_CLICK_LIMIT=5\n"), 0o600))
	t.Setenv("DAILY_CLICK_LIMIT", "7")
	// godotenv.Load only fills variables that are unset, so drop the blank one.
	require.NoError(t, os.Unsetenv("SERVER_PORT"))

	require.NoError(t, LoadEnvFile(path))
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.ServerPort)
	assert.Equal(t, 7, cfg.Policy.DailyClickLimit)

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
