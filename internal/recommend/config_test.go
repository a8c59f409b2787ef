// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Limits.DefaultTopN != 10 {
		t.Errorf("expected default top_n 10, got %d", cfg.Limits.DefaultTopN)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "zero default", modify: func(c *Config) { c.Limits.DefaultTopN = 0 }, wantErr: "default_top_n"},
		{name: "max below default", modify: func(c *Config) { c.Limits.MaxTopN = 5 }, wantErr: "max_top_n"},
		{name: "zero timeout", modify: func(c *Config) { c.Limits.RequestTimeout = 0 }, wantErr: "request_timeout"},
		{name: "zero index entries", modify: func(c *Config) { c.Index.MaxEntries = 0 }, wantErr: "index.max_entries"},
		{name: "zero ttl", modify: func(c *Config) { c.Cache.TTL = 0 }, wantErr: "cache.ttl"},
		{name: "zero cache entries", modify: func(c *Config) { c.Cache.MaxEntries = 0 }, wantErr: "cache.max_entries"},
		{name: "disabled cache ignores ttl", modify: func(c *Config) {
			c.Cache.Enabled = false
			c.Cache.TTL = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Limits.MaxTopN = 1
	clone.Cache.TTL = time.Hour
	if cfg.Limits.MaxTopN == 1 || cfg.Cache.TTL == time.Hour {
		t.Error("clone must not alias the original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := DefaultConfig().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"request_timeout":"10s"`, `"ttl":"5m0s"`, `"default_top_n":10`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}
