package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment
// variables. Engine parameters (fee rate, faucet payout, cooldown) are fixed
// for the process lifetime once loaded.
type Config struct {
	AppEnv string
	Port   string

	// Engine parameters.
	FeeBps         uint64
	FeeRecipient   string
	AdminPrincipal string
	FaucetAmount   uint64
	FaucetReserve  uint64
	FaucetCooldown time.Duration

	// JWTSecret signs and verifies caller bearer tokens.
	JWTSecret string

	// DatabaseURL enables the write-behind journal when set.
	DatabaseURL string
	GeoIPDBPath string

	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The defaults mirror the reference deployment:
// 250 bps fee, 0.01 native (18 decimals) faucet payout, 24h cooldown.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		FeeBps:           getEnvUint64("FEE_BPS", 250),
		FeeRecipient:     os.Getenv("FEE_RECIPIENT"),
		AdminPrincipal:   os.Getenv("ADMIN_PRINCIPAL"),
		FaucetAmount:     getEnvUint64("FAUCET_AMOUNT", 10_000_000_000_000_000),
		FaucetReserve:    getEnvUint64("FAUCET_RESERVE", 1_000_000_000_000_000_000),
		FaucetCooldown:   time.Second * time.Duration(getEnvInt("FAUCET_COOLDOWN_SECONDS", 86400)),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		AllowedOrigins:   splitCSV(getEnv("ALLOWED_ORIGINS", "")),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.FeeRecipient == "" {
		return nil, fmt.Errorf("FEE_RECIPIENT is required")
	}
	if cfg.FeeBps > 10000 {
		return nil, fmt.Errorf("FEE_BPS must be in [0,10000], got %d", cfg.FeeBps)
	}
	if cfg.FaucetAmount == 0 {
		return nil, fmt.Errorf("FAUCET_AMOUNT must be positive")
	}
	if cfg.FaucetCooldown <= 0 {
		return nil, fmt.Errorf("FAUCET_COOLDOWN_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
