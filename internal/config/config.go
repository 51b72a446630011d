package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SALARYDASH"

// DefaultDatasetURL is the public salary CSV the dashboard was built around.
const DefaultDatasetURL = "https://raw.githubusercontent.com/vqrca/dashboard_salarios_dados/refs/heads/main/dados-imersao-final.csv"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `envconfig:"SERVER"`
	Dataset DatasetConfig `envconfig:"DATASET"`
	Logging LoggingConfig `envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080" validate:"required"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s" validate:"gt=0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*" validate:"min=1,dive,required"`
	// RateLimit is the sustained requests per second allowed per client IP; 0 disables it.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"20" validate:"gte=0"`
}

// DatasetConfig locates the salary CSV.
type DatasetConfig struct {
	URL          string        `envconfig:"URL" validate:"required"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"60s" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if cfg.Dataset.URL == "" {
		cfg.Dataset.URL = DefaultDatasetURL
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
