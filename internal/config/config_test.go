package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 40.0, cfg.Recommend.AverageSpeedKmH)
	assert.Equal(t, 15.0, cfg.Recommend.WindowMinMinutes)
	assert.Equal(t, 60.0, cfg.Recommend.WindowMaxMinutes)
	assert.Equal(t, 3, cfg.Recommend.MaxResults)
	assert.Equal(t, 10.0, cfg.Recommend.DefaultRadiusKm)
	assert.Equal(t, 100.0, cfg.Pricing.BaseFare)
	assert.Equal(t, 1.2, cfg.Pricing.HighMarkup)
	assert.Equal(t, CatalogEmbedded, cfg.Catalog.Source)
	assert.Equal(t, "zh-TW", cfg.Maps.Language)
}

func TestDefaultConfigNeedsSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SUPABASE_JWT_SECRET", "s3cret")
	t.Setenv("AVERAGE_SPEED_KMH", "30")
	t.Setenv("MAX_RESULTS", "5")
	t.Setenv("CATALOG_SOURCE", "sqlite")
	t.Setenv("CATALOG_PATH", "/tmp/catalog.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("GEOCODE_CACHE_TTL", "1h")

	cfg := NewDefaultConfig()
	require.NoError(t, cfg.applyEnv())
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30.0, cfg.Recommend.AverageSpeedKmH)
	assert.Equal(t, 5, cfg.Recommend.MaxResults)
	assert.Equal(t, CatalogSQLite, cfg.Catalog.Source)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.GeocodeTTL)
}

func TestApplyEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("MAX_RESULTS", "three")
	t.Setenv("GEOCODE_TIMEOUT", "soon")

	err := NewDefaultConfig().applyEnv()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "MAX_RESULTS")
	assert.Contains(t, err.Error(), "GEOCODE_TIMEOUT")
}

func TestLoadRejectsNaNFromEnv(t *testing.T) {
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("AVERAGE_SPEED_KMH", "NaN")
	t.Setenv("DEFAULT_RADIUS_KM", "Inf")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "AVERAGE_SPEED_KMH")
	assert.Contains(t, err.Error(), "DEFAULT_RADIUS_KM")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Recommend.AverageSpeedKmH = 0 }},
		{"nan speed", func(c *Config) { c.Recommend.AverageSpeedKmH = math.NaN() }},
		{"infinite speed", func(c *Config) { c.Recommend.AverageSpeedKmH = math.Inf(1) }},
		{"nan window bound", func(c *Config) { c.Recommend.WindowMaxMinutes = math.NaN() }},
		{"nan radius", func(c *Config) { c.Recommend.DefaultRadiusKm = math.NaN() }},
		{"negative radius", func(c *Config) { c.Recommend.DefaultRadiusKm = -1 }},
		{"nan base fare", func(c *Config) { c.Pricing.BaseFare = math.NaN() }},
		{"inverted window", func(c *Config) { c.Recommend.WindowMinMinutes = 90 }},
		{"no results", func(c *Config) { c.Recommend.MaxResults = 0 }},
		{"discount markup", func(c *Config) { c.Pricing.HighMarkup = 0.9 }},
		{"sqlite without path", func(c *Config) { c.Catalog.Source = CatalogSQLite }},
		{"supabase without key", func(c *Config) {
			c.Catalog.Source = CatalogSupabase
			c.Catalog.SupabaseURL = "https://example.supabase.co"
		}},
		{"unknown source", func(c *Config) { c.Catalog.Source = "s3" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Auth.Disabled = true
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
