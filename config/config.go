package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	Catalog         CatalogConfig
	Cache           CacheConfig
	RateLimit       RateLimitConfig
	Recommendations RecommendationsConfig
	Sizing          SizingConfig
	Logging         LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds the product store location
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CatalogConfig holds retailer feed API configuration
type CatalogConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Retailers         []string      `mapstructure:"retailers"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Concurrency       int           `mapstructure:"concurrency"`
	SyncInterval      time.Duration `mapstructure:"sync_interval"` // 0 disables the server's background sync
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" is supported
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// RecommendationsConfig tunes the similarity recommender
type RecommendationsConfig struct {
	PriceBand          float64 `mapstructure:"price_band"`
	DefaultLimit       int     `mapstructure:"default_limit"`
	MaxLimit           int     `mapstructure:"max_limit"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// SizingConfig tunes the size conversion service
type SizingConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty disables the rotating file
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/closetcompare/")

	// CLOSETCOMPARE_SERVER_PORT -> server.port
	v.SetEnvPrefix("CLOSETCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.path", "./local-data/closetcompare.db")

	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.base_url", "https://feeds.closetcompare.dev")
	v.SetDefault("catalog.retailers", []string{})
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.requests_per_second", 2.0)
	v.SetDefault("catalog.burst", 5)
	v.SetDefault("catalog.concurrency", 4)
	v.SetDefault("catalog.sync_interval", "0s")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "15m")

	v.SetDefault("ratelimit.per_ip", 120)

	v.SetDefault("recommendations.price_band", 20.0)
	v.SetDefault("recommendations.default_limit", 10)
	v.SetDefault("recommendations.max_limit", 50)
	v.SetDefault("recommendations.enable_debug_logging", false)

	v.SetDefault("sizing.enable_debug_logging", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database path is required (set CLOSETCOMPARE_DATABASE_PATH)")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Catalog.SyncInterval < 0 {
		return fmt.Errorf("catalog sync interval must not be negative, got: %v", config.Catalog.SyncInterval)
	}

	rec := config.Recommendations
	if rec.PriceBand <= 0 {
		return fmt.Errorf("recommendation price band must be positive, got: %v", rec.PriceBand)
	}
	if rec.DefaultLimit <= 0 || rec.DefaultLimit > rec.MaxLimit {
		return fmt.Errorf("recommendation default limit must be in 1..%d, got: %d", rec.MaxLimit, rec.DefaultLimit)
	}

	return nil
}

// RequireAPIKey reports an error when the catalog feed cannot be called
func (c CatalogConfig) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("catalog API key is required (set CLOSETCOMPARE_CATALOG_API_KEY)")
	}
	return nil
}
