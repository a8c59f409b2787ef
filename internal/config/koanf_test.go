// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Source != SourceCSV || cfg.Catalog.Path != "models/clean_data.csv" {
		t.Errorf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Catalog.TrendingLimit != 8 {
		t.Errorf("expected trending limit 8, got %d", cfg.Catalog.TrendingLimit)
	}
	if cfg.Catalog.ReloadMinInterval != 2*time.Second {
		t.Errorf("expected 2s reload min interval, got %v", cfg.Catalog.ReloadMinInterval)
	}
	if cfg.Recommend.DefaultTopN != 10 {
		t.Errorf("expected default top_n 10, got %d", cfg.Recommend.DefaultTopN)
	}
	if cfg.Store.Enabled {
		t.Error("result store should be disabled by default")
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("unexpected CORS origins: %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
catalog:
  source: duckdb
  path: /data/products.csv
  reload_interval: 15m
recommend:
  default_top_n: 5
  cache_ttl: 1m
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Source != SourceDuckDB || cfg.Catalog.Path != "/data/products.csv" {
		t.Errorf("unexpected catalog: %+v", cfg.Catalog)
	}
	if cfg.Catalog.ReloadInterval != 15*time.Minute {
		t.Errorf("expected 15m reload interval, got %v", cfg.Catalog.ReloadInterval)
	}
	if cfg.Recommend.DefaultTopN != 5 || cfg.Recommend.CacheTTL != time.Minute {
		t.Errorf("unexpected recommend: %+v", cfg.Recommend)
	}
	// untouched values keep defaults
	if cfg.Recommend.MaxTopN != 100 {
		t.Errorf("expected max top_n default 100, got %d", cfg.Recommend.MaxTopN)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 8080\n")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_PATH", "/srv/catalog.csv")
	t.Setenv("STORE_ENABLED", "true")
	t.Setenv("STORE_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Catalog.Path != "/srv/catalog.csv" {
		t.Errorf("unexpected catalog path %s", cfg.Catalog.Path)
	}
	if !cfg.Store.Enabled || cfg.Store.TTL != 2*time.Hour {
		t.Errorf("unexpected store: %+v", cfg.Store)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.Security.CORSOrigins)
	}
}

func TestLoadFrom_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad port", env: map[string]string{"HTTP_PORT": "70000"}, wantErr: "HTTP_PORT"},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: "LOG_LEVEL"},
		{name: "bad source", env: map[string]string{"CATALOG_SOURCE": "ftp"}, wantErr: "CATALOG_SOURCE"},
		{name: "http without url", env: map[string]string{"CATALOG_SOURCE": "http"}, wantErr: "CATALOG_URL"},
		{name: "http bad scheme", env: map[string]string{
			"CATALOG_SOURCE": "http", "CATALOG_URL": "ftp://host/file.csv"}, wantErr: "scheme"},
		{name: "top n above max", env: map[string]string{"RECOMMEND_DEFAULT_TOP_N": "500"}, wantErr: "max_top_n"},
		{name: "rate limit", env: map[string]string{"RATE_LIMIT_REQS": "0"}, wantErr: "RATE_LIMIT_REQS"},
		{name: "negative reload spacing", env: map[string]string{"CATALOG_RELOAD_MIN_INTERVAL": "-1s"}, wantErr: "CATALOG_RELOAD_MIN_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom("")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestFindConfigFile_EnvVar(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 8080\n")
	t.Setenv(ConfigPathEnvVar, path)

	if got := FindConfigFile(); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":          "server.port",
		"LOG_LEVEL":          "logging.level",
		"CATALOG_SOURCE":     "catalog.source",
		"DISABLE_RATE_LIMIT": "security.rate_limit_disabled",
		"PATH":               "",
		"HOME":               "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	if err := k.Set("security.cors_origins", " a , ,b"); err != nil {
		t.Fatal(err)
	}
	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields failed: %v", err)
	}
	if got := k.Strings("security.cors_origins"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("unexpected slice %v", got)
	}
}

func TestConfig_Converters(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.MaxTopN = 42
	cfg.Recommend.CacheEnabled = false
	cfg.Logging.Format = "console"

	rc := cfg.RecommendEngineConfig()
	if rc.Limits.MaxTopN != 42 || rc.Cache.Enabled {
		t.Errorf("unexpected engine config: %+v", rc)
	}
	if lc := cfg.LoggingSettings(); lc.Format != "console" || lc.Level != "info" {
		t.Errorf("unexpected logging config: %+v", lc)
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("unexpected addr %s", cfg.Server.Addr())
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development should not warn")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("production wildcard should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://shop.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}

func TestWatchFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 8080\n")

	changed := make(chan struct{}, 1)
	stop, err := WatchFile(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	defer func() { _ = stop() }()

	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change callback")
	}
}
