// Package config loads service settings from an optional YAML file overlaid with environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration.
type Config struct {
	Port               string        `yaml:"port"`
	LogLevel           string        `yaml:"logLevel"`
	CatalogURL         string        `yaml:"catalogUrl"`
	CatalogFile        string        `yaml:"catalogFile"`
	CatalogFromDB      bool          `yaml:"catalogFromDb"`
	WatchCatalog       bool          `yaml:"watchCatalog"`
	DatabaseURL        string        `yaml:"databaseUrl"`
	RedisURL           string        `yaml:"redisUrl"`
	BearerToken        string        `yaml:"bearerToken"`
	RateLimitPerMinute int           `yaml:"rateLimitPerMinute"`
	CacheTTL           time.Duration `yaml:"cacheTtl"`
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		LogLevel:           "info",
		RateLimitPerMinute: 60,
		CacheTTL:           time.Hour,
	}
}

// Load reads the YAML file at path (if non-empty), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.CatalogURL, "CATALOG_URL")
	setString(&c.CatalogFile, "CATALOG_FILE")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.BearerToken, "BEARER_TOKEN")

	if err := setBool(&c.CatalogFromDB, "CATALOG_FROM_DB"); err != nil {
		return err
	}
	if err := setBool(&c.WatchCatalog, "WATCH_CATALOG"); err != nil {
		return err
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
		}
		c.RateLimitPerMinute = n
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}

	return nil
}

// Validate checks that the configuration can start the service.
func (c *Config) Validate() error {
	if c.CatalogURL == "" && c.CatalogFile == "" && !c.CatalogFromDB {
		return fmt.Errorf("no catalog source configured: set CATALOG_FILE, CATALOG_URL, or CATALOG_FROM_DB")
	}
	if c.CatalogFromDB && c.DatabaseURL == "" {
		return fmt.Errorf("CATALOG_FROM_DB requires DATABASE_URL")
	}
	if c.WatchCatalog && c.CatalogFile == "" {
		return fmt.Errorf("WATCH_CATALOG requires CATALOG_FILE")
	}
	if c.BearerToken == "" {
		return fmt.Errorf("BEARER_TOKEN is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
