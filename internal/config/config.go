// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bannerearn-wallet/internal/ledger"
	"bannerearn-wallet/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	LogLevel   string
	DB         db.Config

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	Policy             ledger.Policy
	CORSAllowedOrigins []string
	TxMaxRetries       int
}

// LoadEnvFile loads variables from a .env file into the process environment.
// Variables that are already set take precedence. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	dbPort, err := envInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	jwtTTL, err := envDuration("JWT_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	clickLimit, err := envInt("DAILY_CLICK_LIMIT", ledger.DefaultDailyClickLimit)
	if err != nil {
		return nil, err
	}
	clickReward, err := envDecimal("CLICK_REWARD", ledger.DefaultClickReward)
	if err != nil {
		return nil, err
	}
	minWithdrawal, err := envDecimal("MIN_WITHDRAWAL", ledger.DefaultMinimumWithdrawal)
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(envString("REWARD_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid REWARD_TIMEZONE: %w", err)
	}
	txRetries, err := envInt("TX_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}

	if clickLimit <= 0 {
		return nil, fmt.Errorf("invalid DAILY_CLICK_LIMIT: must be positive")
	}
	if !clickReward.IsPositive() {
		return nil, fmt.Errorf("invalid CLICK_REWARD: must be positive")
	}
	if !minWithdrawal.IsPositive() {
		return nil, fmt.Errorf("invalid MIN_WITHDRAWAL: must be positive")
	}
	if txRetries < 1 {
		return nil, fmt.Errorf("invalid TX_MAX_RETRIES: must be at least 1")
	}

	return &AppConfig{
		ServerPort: envString("SERVER_PORT", "8080"),
		LogLevel:   envString("LOG_LEVEL", "info"),
		DB: db.Config{
			Host:     envString("DB_HOST", "localhost"), // Default to localhost for local development
			Port:     dbPort,
			User:     envString("DB_USER", "user"),
			Password: envString("DB_PASSWORD", "password"),
			DBName:   envString("DB_NAME", "bannerearn"),
			SSLMode:  envString("DB_SSLMODE", "disable"),
		},
		JWTSecret:     envString("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:        jwtTTL,
		AdminEmail:    envString("ADMIN_EMAIL", "admin@bannerearn.com"),
		AdminPassword: envString("ADMIN_PASSWORD", "Admin@123"),
		Policy: ledger.Policy{
			DailyClickLimit:   clickLimit,
			ClickReward:       clickReward,
			MinimumWithdrawal: minWithdrawal,
			Location:          location,
		},
		CORSAllowedOrigins: splitList(envString("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		TxMaxRetries:       txRetries,
	}, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
