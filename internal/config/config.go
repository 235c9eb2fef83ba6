package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Upstream prediction-market API configuration
	Polymarket PolymarketConfig

	// API server configuration
	API APIConfig

	// Display configuration
	Display DisplayConfig

	// Logging configuration
	Log LogConfig
}

// PolymarketConfig holds upstream data API settings
type PolymarketConfig struct {
	DataAPIURL     string        `envconfig:"POLYMARKET_DATA_API_URL" default:"https://data-api.polymarket.com"`
	GammaAPIURL    string        `envconfig:"POLYMARKET_GAMMA_API_URL" default:"https://gamma-api.polymarket.com"`
	RequestTimeout time.Duration `envconfig:"POLYMARKET_REQUEST_TIMEOUT" default:"30s"`
	RateLimitRPS   int           `envconfig:"POLYMARKET_RATE_LIMIT_RPS" default:"20"`

	// ProfileLookup enables the secondary public-profile request
	ProfileLookup bool `envconfig:"POLYMARKET_PROFILE_LOOKUP" default:"true"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8081"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"100"`
}

// DisplayConfig holds settings that affect rendered output
type DisplayConfig struct {
	Timezone    string `envconfig:"DISPLAY_TIMEZONE" default:"UTC"`
	PresetsFile string `envconfig:"PRESETS_FILE" default:""`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Display.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the configured display timezone
func (c *DisplayConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr returns the listen address of the API server
func (c *APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
