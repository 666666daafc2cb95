// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note — Configuration Management:
// Go projects typically manage configuration in one of these ways:
//  1. Struct literals with defaults
//  2. Environment variables via os.Getenv() or "github.com/kelseyhightower/envconfig"
//  3. Config files (YAML/TOML) via "github.com/spf13/viper"
//  4. Command-line flags via the standard "flag" package
//
// This package combines 1 and 2: NewDefaultConfig() gives working defaults and
// Load() overlays environment variables, optionally read from a .env file by
// "github.com/joho/godotenv".
package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Catalog source kinds.
const (
	CatalogEmbedded = "embedded"
	CatalogGeoJSON  = "geojson"
	CatalogSQLite   = "sqlite"
	CatalogSupabase = "supabase"
)

// Config is the top-level configuration container.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Recommend RecommendConfig
	Pricing   PricingConfig
	Catalog   CatalogConfig
	Maps      MapsConfig
	Redis     RedisConfig
}

// ServerConfig holds HTTP server settings.
//
// Go Learning Note — time.Duration:
// Go uses time.Duration (an int64 of nanoseconds) instead of raw integers for
// timeouts and intervals. "10 * time.Second" is self-documenting, and
// time.ParseDuration accepts the same notation from the environment ("10s").
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig configures session verification. JWTSecret is the HS256 secret
// the session provider signs access tokens with.
type AuthConfig struct {
	JWTSecret string
	Disabled  bool
}

// RecommendConfig controls travel-time estimation and the selection policies.
type RecommendConfig struct {
	AverageSpeedKmH   float64
	TimeSpreadMinutes float64
	MinMinutes        int
	WindowMinMinutes  float64
	WindowMaxMinutes  float64
	MaxResults        int
	DefaultRadiusKm   float64
}

// PricingConfig defines the fare quote:
// low = round((BaseFare + km*PerKmRate) / RoundingStep) * RoundingStep,
// high = round(low*HighMarkup / RoundingStep) * RoundingStep.
type PricingConfig struct {
	BaseFare     float64
	PerKmRate    float64
	RoundingStep float64
	HighMarkup   float64
}

// CatalogConfig selects where destinations are loaded from.
type CatalogConfig struct {
	Source        string // embedded, geojson, sqlite or supabase
	Path          string // file path for geojson and sqlite
	SupabaseURL   string
	SupabaseKey   string
	SupabaseTable string
}

// MapsConfig configures the Google Maps Platform integrations. Both reverse
// geocoding and static maps are disabled when APIKey is empty.
type MapsConfig struct {
	APIKey           string
	Language         string
	GeocodeTimeout   time.Duration
	GeocodeBaseURL   string
	StaticMapBaseURL string
}

// RedisConfig enables the reverse-geocoding cache when Addr is set.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	GeocodeTTL time.Duration
}

// NewDefaultConfig returns a Config populated with sensible defaults.
//
// Go Learning Note — Constructor Functions:
// Go has no constructors. By convention, New<Type>() functions serve the same
// purpose. They return a pointer (*Config) so the caller gets a reference to
// shared state rather than copying the struct on every assignment.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Recommend: RecommendConfig{
			AverageSpeedKmH:   40,
			TimeSpreadMinutes: 5,
			MinMinutes:        5,
			WindowMinMinutes:  15,
			WindowMaxMinutes:  60,
			MaxResults:        3,
			DefaultRadiusKm:   10,
		},
		Pricing: PricingConfig{
			BaseFare:     100,
			PerKmRate:    10,
			RoundingStep: 10,
			HighMarkup:   1.2,
		},
		Catalog: CatalogConfig{
			Source:        CatalogEmbedded,
			SupabaseTable: "pois",
		},
		Maps: MapsConfig{
			Language:       "zh-TW",
			GeocodeTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			GeocodeTTL: 24 * time.Hour,
		},
	}
}

// Load reads an optional .env file, overlays environment variables on the
// defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] No .env file found, using environment only")
	}

	cfg := NewDefaultConfig()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		c.Server.Port = port
	}
	collect(getEnvDuration("SERVER_READ_TIMEOUT", &c.Server.ReadTimeout))
	collect(getEnvDuration("SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout))
	collect(getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout))

	getEnvString("SUPABASE_JWT_SECRET", &c.Auth.JWTSecret)
	collect(getEnvBool("AUTH_DISABLED", &c.Auth.Disabled))

	collect(getEnvFloat("AVERAGE_SPEED_KMH", &c.Recommend.AverageSpeedKmH))
	collect(getEnvFloat("TIME_SPREAD_MINUTES", &c.Recommend.TimeSpreadMinutes))
	collect(getEnvInt("MIN_MINUTES", &c.Recommend.MinMinutes))
	collect(getEnvFloat("WINDOW_MIN_MINUTES", &c.Recommend.WindowMinMinutes))
	collect(getEnvFloat("WINDOW_MAX_MINUTES", &c.Recommend.WindowMaxMinutes))
	collect(getEnvInt("MAX_RESULTS", &c.Recommend.MaxResults))
	collect(getEnvFloat("DEFAULT_RADIUS_KM", &c.Recommend.DefaultRadiusKm))

	collect(getEnvFloat("BASE_FARE", &c.Pricing.BaseFare))
	collect(getEnvFloat("PER_KM_RATE", &c.Pricing.PerKmRate))
	collect(getEnvFloat("FARE_ROUNDING_STEP", &c.Pricing.RoundingStep))
	collect(getEnvFloat("FARE_HIGH_MARKUP", &c.Pricing.HighMarkup))

	getEnvString("CATALOG_SOURCE", &c.Catalog.Source)
	getEnvString("CATALOG_PATH", &c.Catalog.Path)
	getEnvString("SUPABASE_URL", &c.Catalog.SupabaseURL)
	getEnvString("SUPABASE_KEY", &c.Catalog.SupabaseKey)
	getEnvString("SUPABASE_POI_TABLE", &c.Catalog.SupabaseTable)

	getEnvString("GOOGLE_MAPS_API_KEY", &c.Maps.APIKey)
	getEnvString("GEOCODE_LANGUAGE", &c.Maps.Language)
	collect(getEnvDuration("GEOCODE_TIMEOUT", &c.Maps.GeocodeTimeout))
	getEnvString("GEOCODE_BASE_URL", &c.Maps.GeocodeBaseURL)
	getEnvString("STATIC_MAP_BASE_URL", &c.Maps.StaticMapBaseURL)

	getEnvString("REDIS_ADDR", &c.Redis.Addr)
	getEnvString("REDIS_PASSWORD", &c.Redis.Password)
	collect(getEnvInt("REDIS_DB", &c.Redis.DB))
	collect(getEnvDuration("GEOCODE_CACHE_TTL", &c.Redis.GeocodeTTL))

	return errors.Join(errs...)
}

// Validate checks cross-field constraints that defaults alone cannot
// guarantee once environment overrides are applied.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if !c.Auth.Disabled && c.Auth.JWTSecret == "" {
		fail("SUPABASE_JWT_SECRET is required unless AUTH_DISABLED=true")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"AVERAGE_SPEED_KMH", c.Recommend.AverageSpeedKmH},
		{"TIME_SPREAD_MINUTES", c.Recommend.TimeSpreadMinutes},
		{"WINDOW_MIN_MINUTES", c.Recommend.WindowMinMinutes},
		{"WINDOW_MAX_MINUTES", c.Recommend.WindowMaxMinutes},
		{"DEFAULT_RADIUS_KM", c.Recommend.DefaultRadiusKm},
		{"BASE_FARE", c.Pricing.BaseFare},
		{"PER_KM_RATE", c.Pricing.PerKmRate},
		{"FARE_ROUNDING_STEP", c.Pricing.RoundingStep},
		{"FARE_HIGH_MARKUP", c.Pricing.HighMarkup},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			fail("%s must be a finite number, got %v", f.name, f.value)
		}
	}
	if c.Recommend.AverageSpeedKmH <= 0 {
		fail("average speed must be positive, got %v", c.Recommend.AverageSpeedKmH)
	}
	if c.Recommend.WindowMinMinutes > c.Recommend.WindowMaxMinutes {
		fail("time window [%v, %v] is empty", c.Recommend.WindowMinMinutes, c.Recommend.WindowMaxMinutes)
	}
	if c.Recommend.DefaultRadiusKm <= 0 {
		fail("default radius must be positive, got %v", c.Recommend.DefaultRadiusKm)
	}
	if c.Recommend.MaxResults <= 0 {
		fail("max results must be positive, got %d", c.Recommend.MaxResults)
	}
	if c.Pricing.HighMarkup < 1 {
		fail("fare markup must be at least 1, got %v", c.Pricing.HighMarkup)
	}

	switch c.Catalog.Source {
	case CatalogEmbedded:
	case CatalogGeoJSON, CatalogSQLite:
		if c.Catalog.Path == "" {
			fail("CATALOG_PATH is required for catalog source %q", c.Catalog.Source)
		}
	case CatalogSupabase:
		if c.Catalog.SupabaseURL == "" || c.Catalog.SupabaseKey == "" {
			fail("SUPABASE_URL and SUPABASE_KEY are required for catalog source %q", c.Catalog.Source)
		}
	default:
		fail("unknown catalog source %q", c.Catalog.Source)
	}

	return errors.Join(errs...)
}

func getEnvString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func getEnvInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func getEnvFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = f
	return nil
}

func getEnvBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
	}
	*dst = b
	return nil
}

func getEnvDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
	}
	*dst = d
	return nil
}
