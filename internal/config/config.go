// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables (in that order of precedence,
// lowest first).
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Store     StoreConfig     `koanf:"store"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Timeout bounds each API request.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CatalogConfig describes where the product catalogs come from and how
// often they are reloaded.
type CatalogConfig struct {
	// Source selects the loader: "csv", "duckdb" or "http".
	// Default: csv
	Source string `koanf:"source"`

	// Path is the product CSV for the csv and duckdb sources.
	// Default: models/clean_data.csv
	Path string `koanf:"path"`

	// URL is the product CSV location for the http source.
	URL string `koanf:"url"`

	// TrendingPath is the CSV of trending products. Empty disables trending.
	// Default: models/trending_products.csv
	TrendingPath string `koanf:"trending_path"`

	// TrendingLimit is how many trending products are served by default.
	// Default: 8
	TrendingLimit int `koanf:"trending_limit"`

	// ReloadInterval re-reads the source periodically; zero disables it.
	// Default: 0
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// WatchFile reloads file-backed catalogs as soon as their file changes.
	// Default: false
	WatchFile bool `koanf:"watch_file"`

	// ReloadMinInterval spaces triggered reloads (file events and manual
	// triggers). Zero reloads on every trigger.
	// Default: 2s
	ReloadMinInterval time.Duration `koanf:"reload_min_interval"`

	// DuckDBPath is the database file for the duckdb source. Empty means in-memory.
	DuckDBPath string `koanf:"duckdb_path"`

	// DuckDBTable is the table the duckdb source ingests into.
	// Default: catalog_items
	DuckDBTable string `koanf:"duckdb_table"`

	// HTTPTimeout bounds one remote fetch.
	// Default: 30s
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// BreakerTimeout is how long the remote breaker stays open.
	// Default: 30s
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`

	// BreakerFailures is the consecutive failure count that opens the breaker.
	// Default: 3
	BreakerFailures uint32 `koanf:"breaker_failures"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultTopN       int           `koanf:"default_top_n"`
	MaxTopN           int           `koanf:"max_top_n"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	IndexCacheEntries int           `koanf:"index_cache_entries"`
	CacheEnabled      bool          `koanf:"cache_enabled"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries   int           `koanf:"cache_max_entries"`

	// WarmOnStartup builds the index before the server accepts requests.
	WarmOnStartup bool `koanf:"warm_on_startup"`
}

// StoreConfig holds the persistent result store settings.
type StoreConfig struct {
	// Enabled turns on the BadgerDB result store.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// Path is the database directory. Empty means in-memory.
	Path string `koanf:"path"`

	// TTL is how long stored responses live.
	// Default: 24h
	TTL time.Duration `koanf:"ttl"`

	// GCInterval is how often value-log GC runs.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// RecommendEngineConfig converts the recommend section to the engine's Config.
func (c *Config) RecommendEngineConfig() *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultTopN:    c.Recommend.DefaultTopN,
			MaxTopN:        c.Recommend.MaxTopN,
			RequestTimeout: c.Recommend.RequestTimeout,
		},
		Index: recommend.IndexConfig{
			MaxEntries: c.Recommend.IndexCacheEntries,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.Recommend.CacheEnabled,
			TTL:        c.Recommend.CacheTTL,
			MaxEntries: c.Recommend.CacheMaxEntries,
		},
	}
}

// LoggingSettings converts the logging section to logging.Config.
func (c *Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
