// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package main

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/config"
)

// noopClose is returned for sources that hold no resources.
func noopClose() error { return nil }

// buildProductSource returns the products source selected by
// catalog.source and a function releasing its resources.
func buildProductSource(cfg *config.Config) (catalog.Source, func() error, error) {
	switch cfg.Catalog.Source {
	case config.SourceCSV:
		return catalog.NewCSVFileSource(cfg.Catalog.Path), noopClose, nil

	case config.SourceDuckDB:
		db, err := sql.Open("duckdb", cfg.Catalog.DuckDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb: %w", err)
		}
		return catalog.NewDuckDBSource(db, cfg.Catalog.Path, cfg.Catalog.DuckDBTable), db.Close, nil

	case config.SourceHTTP:
		breaker := catalog.DefaultBreakerConfig()
		breaker.Timeout = cfg.Catalog.BreakerTimeout
		breaker.FailureThreshold = cfg.Catalog.BreakerFailures
		client := &http.Client{Timeout: cfg.Catalog.HTTPTimeout}
		return catalog.NewHTTPSource(cfg.Catalog.URL, breaker, client), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
