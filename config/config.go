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
	Server        ServerConfig
	OpenFoodFacts OpenFoodFactsConfig
	Store         StoreConfig
	RateLimit     RateLimitConfig
	Log           LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds product database configuration
type OpenFoodFactsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// StoreConfig holds preference storage configuration
type StoreConfig struct {
	Type      string `mapstructure:"type"` // "bolt", "redis" or "memory"
	Path      string `mapstructure:"path"`
	RedisURL  string `mapstructure:"redis_url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load loads configuration from environment variables and config files.
// configFile, when non-empty, replaces the default search paths.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/safeeat/")
	}

	// SAFEEAT_STORE_TYPE overrides store.type
	v.SetEnvPrefix("SAFEEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"capacitor://localhost", "http://localhost:*"})

	// Product database defaults
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org/api/v0/product")
	v.SetDefault("openfoodfacts.requests_per_minute", 100)
	v.SetDefault("openfoodfacts.timeout", "30s")
	v.SetDefault("openfoodfacts.user_agent", "SafeEat/1.0")

	// Store defaults
	v.SetDefault("store.type", "bolt")
	v.SetDefault("store.path", "safeeat.db")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.key_prefix", "safeeat:")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("product database base URL is required (set SAFEEAT_OPENFOODFACTS_BASE_URL)")
	}

	switch config.Store.Type {
	case "bolt":
		if config.Store.Path == "" {
			return fmt.Errorf("store path is required when store type is 'bolt'")
		}
	case "redis":
		if config.Store.RedisURL == "" {
			return fmt.Errorf("redis URL is required when store type is 'redis'")
		}
	case "memory":
	default:
		return fmt.Errorf("store type must be 'bolt', 'redis' or 'memory', got: %s", config.Store.Type)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
