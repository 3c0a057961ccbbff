package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/obrafin-api/internal/finance"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/obrafin")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, finance.DefaultBands, cfg.CostBands)
	assert.Equal(t, 6*time.Hour, cfg.CostSweepInterval)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/obrafin")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CostBands(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/obrafin")
	t.Setenv("COST_BAND_MATERIAL", "30, 45")
	t.Setenv("COST_BAND_OTHER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, finance.Band{Min: 30, Max: 45}, cfg.CostBands.Material)
	assert.Equal(t, finance.DefaultBands.Labor, cfg.CostBands.Labor)
	assert.Equal(t, finance.DefaultBands.Other, cfg.CostBands.Other)
}

func TestLoad_InvalidBand(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/obrafin")
	t.Setenv("COST_BAND_LABOR", "25,15")

	_, err := Load()
	assert.ErrorContains(t, err, "COST_BAND_LABOR")
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	got := getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"})
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, got)
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")

	assert.Equal(t, time.Minute, getEnvAsDuration("FETCH_TIMEOUT", time.Minute))
}
