// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package main

import (
	"strings"
	"testing"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/config"
)

func TestBuildProductSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		wantType string
		wantErr  bool
	}{
		{name: "csv", source: config.SourceCSV, wantType: "*catalog.CSVFileSource"},
		{name: "duckdb", source: config.SourceDuckDB, wantType: "*catalog.DuckDBSource"},
		{name: "http", source: config.SourceHTTP, wantType: "*catalog.HTTPSource"},
		{name: "unknown", source: "ftp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{Catalog: config.CatalogConfig{
				Source:          tt.source,
				Path:            "models/clean_data.csv",
				URL:             "https://example.com/catalog.csv",
				DuckDBTable:     "catalog_items",
				BreakerFailures: 3,
			}}

			src, closeFn, err := buildProductSource(cfg)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "ftp") {
					t.Errorf("expected unknown source error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildProductSource failed: %v", err)
			}
			defer func() {
				if err := closeFn(); err != nil {
					t.Errorf("close failed: %v", err)
				}
			}()

			var got string
			switch src.(type) {
			case *catalog.CSVFileSource:
				got = "*catalog.CSVFileSource"
			case *catalog.DuckDBSource:
				got = "*catalog.DuckDBSource"
			case *catalog.HTTPSource:
				got = "*catalog.HTTPSource"
			}
			if got != tt.wantType {
				t.Errorf("got source %T, want %s", src, tt.wantType)
			}
		})
	}
}
