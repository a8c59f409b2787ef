// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
)

// DuckDBSource ingests a CSV file into a DuckDB table with read_csv and reads
// the rows back in file order. The table stays queryable after the load.
// Each load goes through a staging table; the live table is replaced only
// once the staged rows have been read back.
type DuckDBSource struct {
	db    *sql.DB
	path  string
	table string

	// serializes loads, which share the staging table
	mu sync.Mutex
}

// NewDuckDBSource returns a source that loads path into table (default "catalog_items").
func NewDuckDBSource(db *sql.DB, path, table string) *DuckDBSource {
	if table == "" {
		table = "catalog_items"
	}
	return &DuckDBSource{db: db, path: path, table: table}
}

func (s *DuckDBSource) String() string {
	return "duckdb:" + s.path
}

// Load stages the CSV, reads it back and then swaps it in as the live table.
// On any failure the live table keeps the previous load.
func (s *DuckDBSource) Load(ctx context.Context) (*Catalog, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("stat catalog file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staging := s.stagingTable()
	if err := s.ingest(ctx, staging); err != nil {
		return nil, err
	}

	cat, err := s.readCatalog(ctx, staging)
	if err == nil {
		err = s.promote(ctx, staging)
	}
	if err != nil {
		s.dropStaging(staging)
		return nil, err
	}
	return cat, nil
}

func (s *DuckDBSource) stagingTable() string {
	return s.table + "__staging"
}

func (s *DuckDBSource) readCatalog(ctx context.Context, table string) (*Catalog, error) {
	columns, err := s.columns(ctx, table)
	if err != nil {
		return nil, err
	}

	items, err := s.readItems(ctx, table, columns)
	if err != nil {
		return nil, err
	}

	return New(items, WithColumns(columns), WithSource(s.path)), nil
}

// ingest loads the file into table. all_varchar keeps the cells as text so
// numeric parsing matches the plain CSV source.
func (s *DuckDBSource) ingest(ctx context.Context, table string) error {
	query := fmt.Sprintf(`
		CREATE OR REPLACE TABLE %s AS
		SELECT row_number() OVER () AS __row, *
		FROM read_csv(%s, header = true, all_varchar = true)
	`, quoteIdent(table), quoteLiteral(s.path))

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ingest catalog csv: %w", err)
	}
	return nil
}

// promote replaces the live table with staging in one transaction.
func (s *DuckDBSource) promote(ctx context.Context, staging string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog swap: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(s.table)); err != nil {
		return fmt.Errorf("failed to drop previous catalog table: %w", err)
	}
	rename := fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quoteIdent(staging), quoteIdent(s.table))
	if _, err := tx.ExecContext(ctx, rename); err != nil {
		return fmt.Errorf("failed to swap catalog table: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog swap: %w", err)
	}
	return nil
}

// dropStaging runs without the load context, which may already be canceled.
func (s *DuckDBSource) dropStaging(staging string) {
	_, _ = s.db.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+quoteIdent(staging))
}

// columns returns the columns of table in file order, excluding the row counter.
func (s *DuckDBSource) columns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		if name != "__row" {
			columns = append(columns, name)
		}
	}
	return columns, rows.Err()
}

func (s *DuckDBSource) readItems(ctx context.Context, table string, columns []string) ([]Item, error) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	selects := make([]string, len(KnownColumns))
	for i, col := range KnownColumns {
		if present[col] {
			selects[i] = fmt.Sprintf("COALESCE(%s, '')", quoteIdent(col))
		} else {
			selects[i] = "''"
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY __row",
		strings.Join(selects, ", "), quoteIdent(table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []Item
	for rows.Next() {
		var name, tags, reviews, brand, image, rating string
		if err := rows.Scan(&name, &tags, &reviews, &brand, &image, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, Item{
			Name:        name,
			Tags:        tags,
			ReviewCount: parseNumber(reviews),
			Brand:       brand,
			ImageURL:    image,
			Rating:      parseNumber(rating),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog items: %w", err)
	}
	return items, nil
}

// BrandCount is one row of the brand summary.
type BrandCount struct {
	Brand string `json:"brand"`
	Items int    `json:"items"`
}

// TopBrands summarises the ingested table by brand, largest first.
func (s *DuckDBSource) TopBrands(ctx context.Context, limit int) ([]BrandCount, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`
		SELECT COALESCE(%s, '') AS brand, COUNT(*) AS items
		FROM %s
		GROUP BY 1
		ORDER BY items DESC, brand
		LIMIT ?
	`, quoteIdent(ColumnBrand), quoteIdent(s.table))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise brands: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []BrandCount
	for rows.Next() {
		var bc BrandCount
		if err := rows.Scan(&bc.Brand, &bc.Items); err != nil {
			return nil, fmt.Errorf("failed to scan brand count: %w", err)
		}
		out = append(out, bc)
	}
	return out, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}
