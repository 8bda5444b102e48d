package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL         string
	RedisURL            string
	Port                string
	IsProduction        bool
	JWTSecret           string
	JWTExpiryDuration   time.Duration
	JWTIssuer           string
	MarketAPIBaseURL    string
	RateRefreshInterval time.Duration
	LeaderboardCacheTTL time.Duration
	NewsAPIKey          string
	PostHogAPIKey       string
	RateLimitRPS        float64
}

// LoadConfig loads configuration from environment variables. A .env file is
// read first when present so local development does not need exported vars.
func LoadConfig() (*Config, error) {
	// Ignore the error: the file is optional outside local dev.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY", "24h")
	v.SetDefault("JWT_ISSUER", "blox_backend")
	v.SetDefault("MARKET_API_BASE_URL", "")
	v.SetDefault("RATE_REFRESH_INTERVAL", "10s")
	v.SetDefault("LEADERBOARD_CACHE_TTL", "60s")
	v.SetDefault("RATE_LIMIT_RPS", 10.0)

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTExpiryDuration:   v.GetDuration("JWT_EXPIRY"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		MarketAPIBaseURL:    v.GetString("MARKET_API_BASE_URL"),
		RateRefreshInterval: v.GetDuration("RATE_REFRESH_INTERVAL"),
		LeaderboardCacheTTL: v.GetDuration("LEADERBOARD_CACHE_TTL"),
		NewsAPIKey:          v.GetString("NEWS_API_KEY"),
		PostHogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		RateLimitRPS:        v.GetFloat64("RATE_LIMIT_RPS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}
