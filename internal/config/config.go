// Package config reads runtime settings from GRADPATH_* environment
// variables. Every setting has a default, so an empty environment works.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the gradpath CLI and server.
type Config struct {
	DBPath        string
	CatalogPath   string
	Addr          string
	RedisURL      string
	LogLevel      string
	LogDev        bool
	Archive       bool
	StrictCatalog bool
	CacheTTL      time.Duration
}

// DefaultConfig returns the configuration used when nothing is set.
// Archiving is off and no Redis cache is configured.
func DefaultConfig() Config {
	return Config{
		DBPath:      defaultDBPath(),
		CatalogPath: filepath.Join("data", "catalog.csv"),
		Addr:        "127.0.0.1:8080",
		LogLevel:    "info",
		CacheTTL:    time.Hour,
	}
}

func defaultDBPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gradpath", "plans.db")
	}
	return "gradpath.db"
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values. Malformed booleans and durations are
// reported rather than silently ignored.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = getEnv("GRADPATH_DB", cfg.DBPath)
	cfg.CatalogPath = getEnv("GRADPATH_CATALOG", cfg.CatalogPath)
	cfg.Addr = getEnv("GRADPATH_ADDR", cfg.Addr)
	cfg.RedisURL = getEnv("GRADPATH_REDIS_URL", cfg.RedisURL)
	cfg.LogLevel = getEnv("GRADPATH_LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.LogDev, err = getBool("GRADPATH_LOG_DEV", cfg.LogDev); err != nil {
		return Config{}, err
	}
	if cfg.Archive, err = getBool("GRADPATH_ARCHIVE", cfg.Archive); err != nil {
		return Config{}, err
	}
	if cfg.StrictCatalog, err = getBool("GRADPATH_STRICT_CATALOG", cfg.StrictCatalog); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("GRADPATH_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("GRADPATH_CACHE_TTL: invalid duration %q", v)
		}
		cfg.CacheTTL = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
