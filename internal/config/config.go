package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sjperalta/obrafin-api/internal/finance"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// JWT (tokens are issued by the identity provider, only verified here)
	JWTSecret string

	// Storage
	StoragePath string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Cost control
	CostBands         finance.Bands
	CostSweepInterval time.Duration

	// Timeout for each remote fetch behind the project overview
	FetchTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		StoragePath:       getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:       getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:    getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		CostSweepInterval: getEnvAsDuration("COST_SWEEP_INTERVAL", 6*time.Hour),
		FetchTimeout:      getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
	}

	bands, err := loadBands()
	if err != nil {
		return nil, err
	}
	cfg.CostBands = bands

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func loadBands() (finance.Bands, error) {
	bands := finance.DefaultBands
	for key, band := range map[string]*finance.Band{
		"COST_BAND_MATERIAL": &bands.Material,
		"COST_BAND_LABOR":    &bands.Labor,
		"COST_BAND_OTHER":    &bands.Other,
	} {
		raw := getEnv(key, "")
		if raw == "" {
			continue
		}
		parsed, err := finance.ParseBand(raw)
		if err != nil {
			return finance.Bands{}, fmt.Errorf("%s: %w", key, err)
		}
		*band = parsed
	}
	return bands, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable such as "30s" or "6h"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
