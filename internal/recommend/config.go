// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Index contains term-weight matrix caching parameters.
	Index IndexConfig `json:"index"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is the number of recommendations returned when the request
	// does not specify one.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the requested count.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`

	// RequestTimeout bounds a single recommendation request.
	// Default: 10s.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// IndexConfig controls memoization of term-weight matrices.
type IndexConfig struct {
	// MaxEntries is how many matrices (one per catalog content hash) are kept.
	// Default: 4.
	MaxEntries int `json:"max_entries"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN:    DefaultTopN,
			MaxTopN:        100,
			RequestTimeout: 10 * time.Second,
		},
		Index: IndexConfig{
			MaxEntries: 4,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d",
			c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive, got %v", c.Limits.RequestTimeout)
	}
	if c.Index.MaxEntries < 1 {
		return fmt.Errorf("index.max_entries must be positive, got %d", c.Index.MaxEntries)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// all nested structs are value types
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings ("10s") instead of nanoseconds.
func (c *Config) MarshalJSON() ([]byte, error) {
	type limits struct {
		DefaultTopN    int    `json:"default_top_n"`
		MaxTopN        int    `json:"max_top_n"`
		RequestTimeout string `json:"request_timeout"`
	}
	type cacheCfg struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	return json.Marshal(&struct {
		Limits limits      `json:"limits"`
		Index  IndexConfig `json:"index"`
		Cache  cacheCfg    `json:"cache"`
	}{
		Limits: limits{
			DefaultTopN:    c.Limits.DefaultTopN,
			MaxTopN:        c.Limits.MaxTopN,
			RequestTimeout: c.Limits.RequestTimeout.String(),
		},
		Index: c.Index,
		Cache: cacheCfg{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
