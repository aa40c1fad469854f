package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Share    ShareConfig    `mapstructure:"share"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Janitor  JanitorConfig  `mapstructure:"janitor"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Health   HealthConfig   `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type StorageConfig struct {
	Driver   string `mapstructure:"STORAGE_DRIVER"`
	Dir      string `mapstructure:"STORAGE_DIR"`
	BoltPath string `mapstructure:"STORAGE_BOLT_PATH"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	TTL      string `mapstructure:"REDIS_CACHE_TTL"`
}

type ShareConfig struct {
	BaseURL     string `mapstructure:"SHARE_BASE_URL"`
	WarnLength  int    `mapstructure:"SHARE_WARN_LENGTH"`
	BlockLength int    `mapstructure:"SHARE_BLOCK_LENGTH"`
	Currency    string `mapstructure:"SHARE_CURRENCY"`
}

type AutosaveConfig struct {
	Path string `mapstructure:"AUTOSAVE_PATH"`
}

type JanitorConfig struct {
	Schedule  string `mapstructure:"JANITOR_SCHEDULE"`
	Retention string `mapstructure:"JANITOR_RETENTION"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("STORAGE_DIR", ".data/payloads")
	viper.SetDefault("STORAGE_BOLT_PATH", ".data/payloads.db")
	viper.SetDefault("SHARE_BASE_URL", "http://localhost:8080/")
	viper.SetDefault("SHARE_WARN_LENGTH", 3000)
	viper.SetDefault("SHARE_BLOCK_LENGTH", 8000)
	viper.SetDefault("SHARE_CURRENCY", "KRW")
	viper.SetDefault("AUTOSAVE_PATH", ".data/autosave.json")
	viper.SetDefault("REDIS_CACHE_TTL", "24h")
	viper.SetDefault("JANITOR_SCHEDULE", "0 0 4 * * *")
	viper.SetDefault("JANITOR_RETENTION", "2160h")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the file driver")
		}
	case "bolt":
		if c.Storage.BoltPath == "" {
			return fmt.Errorf("STORAGE_BOLT_PATH is required for the bolt driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be file or bolt, got %q", c.Storage.Driver)
	}

	if c.Share.WarnLength <= 0 {
		return fmt.Errorf("SHARE_WARN_LENGTH must be greater than 0")
	}

	if c.Share.BlockLength < c.Share.WarnLength {
		return fmt.Errorf("SHARE_BLOCK_LENGTH must be >= SHARE_WARN_LENGTH")
	}

	if _, err := time.ParseDuration(c.Redis.TTL); err != nil {
		return fmt.Errorf("REDIS_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Janitor.Retention); err != nil {
		return fmt.Errorf("JANITOR_RETENTION must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetCacheTTL returns the redis cache TTL as duration
func (c *Config) GetCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Redis.TTL)
	return ttl
}

// GetJanitorRetention returns the janitor retention window as duration
func (c *Config) GetJanitorRetention() time.Duration {
	retention, _ := time.ParseDuration(c.Janitor.Retention)
	return retention
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
