package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Refresh  RefreshConfig
	Provider ProviderConfig
	Flights  FlightsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string
	CORS    CORSConfig
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// StoreConfig holds the local SQLite store location.
type StoreConfig struct {
	Path string
}

// RefreshConfig holds orchestrator tuning knobs.
type RefreshConfig struct {
	// RawThreshold is the freshness threshold for orchestrated refresh (§4.7, default 6h).
	RawThreshold time.Duration
	// BackgroundThreshold is used by the public refresh endpoint's background
	// task, to avoid redundant provider load.
	BackgroundThreshold time.Duration
	// Fanout bounds how many spots the Orchestrator processes concurrently.
	Fanout int
	// Interval is the period of the scheduled background refresh loop.
	Interval time.Duration
	// Disabled turns off the scheduled background refresh loop entirely.
	Disabled bool
}

// ProviderConfig holds outbound HTTP client tuning for the atmospheric and
// marine provider adapters.
type ProviderConfig struct {
	AtmosphericBaseURL string
	MarineBaseURL      string
	RequestTimeout     time.Duration
	MaxRetries         int
	RetryBaseInterval  time.Duration
}

// FlightsConfig holds the opaque secret required by the flight-search adapter.
type FlightsConfig struct {
	APIKey string
}

// Load reads configuration from environment variables, falling back to a
// .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
			CORS: CORSConfig{
				AllowOrigins:     []string{"*"},
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
				ExposeHeaders:    []string{"Content-Length"},
				AllowCredentials: true,
				MaxAge:           12 * time.Hour,
			},
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "data/surf_cache.db"),
		},
		Refresh: RefreshConfig{
			RawThreshold:        getEnvAsHours("REFRESH_RAW_THRESHOLD_HOURS", 6*time.Hour),
			BackgroundThreshold: getEnvAsHours("REFRESH_BACKGROUND_THRESHOLD_HOURS", 168*time.Hour),
			Fanout:              getEnvAsInt("REFRESH_FANOUT", 5),
			Interval:            getEnvAsHours("REFRESH_INTERVAL_HOURS", 1*time.Hour),
			Disabled:            getEnvAsBool("DISABLE_BACKGROUND_REFRESH", false),
		},
		Provider: ProviderConfig{
			AtmosphericBaseURL: getEnv("ATMOSPHERIC_PROVIDER_URL", "https://api.open-meteo.com/v1/forecast"),
			MarineBaseURL:      getEnv("MARINE_PROVIDER_URL", "https://marine-api.open-meteo.com/v1/marine"),
			RequestTimeout:     getEnvAsSeconds("PROVIDER_REQUEST_TIMEOUT_SECONDS", 30*time.Second),
			MaxRetries:         getEnvAsInt("PROVIDER_MAX_RETRIES", 5),
			RetryBaseInterval:  200 * time.Millisecond,
		},
		Flights: FlightsConfig{
			APIKey: getEnv("FLIGHT_SEARCH_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH must not be empty")
	}
	if c.Refresh.Fanout < 1 {
		return fmt.Errorf("REFRESH_FANOUT must be at least 1")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsHours(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return time.Duration(value * float64(time.Hour))
}

func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return time.Duration(value * float64(time.Second))
}
