// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package config loads and validates Shelfmate configuration.
//
// Configuration is layered with Koanf v2, lowest precedence first:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
//     /etc/shelfmate/config.yaml, /etc/shelfmate/config.yml
//  3. Environment variables from an explicit mapping table
//
// # Environment Variables
//
//	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//	CATALOG_SOURCE (csv|duckdb|http), CATALOG_PATH, CATALOG_URL
//	TRENDING_PATH, TRENDING_LIMIT, CATALOG_RELOAD_INTERVAL, CATALOG_WATCH_FILE
//	CATALOG_RELOAD_MIN_INTERVAL
//	DUCKDB_PATH, DUCKDB_TABLE
//	CATALOG_HTTP_TIMEOUT, CATALOG_BREAKER_TIMEOUT, CATALOG_BREAKER_FAILURES
//	RECOMMEND_DEFAULT_TOP_N, RECOMMEND_MAX_TOP_N, RECOMMEND_REQUEST_TIMEOUT
//	RECOMMEND_INDEX_CACHE_ENTRIES, RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL
//	RECOMMEND_CACHE_MAX_ENTRIES, RECOMMEND_WARM_ON_STARTUP
//	STORE_ENABLED, STORE_PATH, STORE_TTL, STORE_GC_INTERVAL
//	RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
//
// Unmapped variables are ignored. CORS_ORIGINS is comma-separated.
//
// # Example YAML
//
//	server:
//	  port: 5000
//	catalog:
//	  source: duckdb
//	  path: /data/clean_data.csv
//	  reload_interval: 15m
//	recommend:
//	  default_top_n: 10
//	  cache_ttl: 5m
//	store:
//	  enabled: true
//	  path: /data/results
package config
