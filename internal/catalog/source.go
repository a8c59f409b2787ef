// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmate/internal/metrics"
)

// Source loads a catalog from somewhere.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)

	// String describes the source for logs and metrics.
	String() string
}

// LoadOrEmpty loads from src and, on any failure, logs a warning and returns
// an empty catalog tagged with the source name. It never returns nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func LoadOrEmpty(ctx context.Context, src Source, logger zerolog.Logger) *Catalog {
	start := time.Now()
	cat, err := src.Load(ctx)
	metrics.RecordCatalogLoad(sourceKind(src), time.Since(start), err)

	if err != nil {
		logger.Warn().
			Err(err).
			Str("source", src.String()).
			Msg("catalog load failed, serving an empty catalog")
		return Empty(WithSource(src.String()))
	}

	logger.Info().
		Str("source", src.String()).
		Int("items", cat.Len()).
		Str("hash", cat.Hash()).
		Dur("duration", time.Since(start)).
		Msg("catalog loaded")
	return cat
}

func sourceKind(src Source) string {
	switch src.(type) {
	case *CSVFileSource:
		return "csv"
	case *DuckDBSource:
		return "duckdb"
	case *HTTPSource:
		return "http"
	default:
		return "other"
	}
}

// CSVFileSource reads a catalog from a local CSV file.
type CSVFileSource struct {
	path string
}

// NewCSVFileSource returns a source reading path.
func NewCSVFileSource(path string) *CSVFileSource {
	return &CSVFileSource{path: path}
}

// Load opens and parses the file.
func (s *CSVFileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseCSV(f, WithSource(s.path))
}

func (s *CSVFileSource) String() string {
	return s.path
}

// ParseCSV reads a header row followed by item rows. Columns are matched by
// exact header name; unknown columns are ignored and missing optional columns
// load as zero values. Missing Name or Tags columns are not an error here;
// they make the resulting catalog fail Validate.
func ParseCSV(r io.Reader, opts ...Option) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Empty(opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	positions := columnPositions(header)

	var items []Item
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row %d: %w", len(items)+1, err)
		}
		items = append(items, itemFromRecord(record, positions))
	}

	return New(items, append([]Option{WithColumns(header)}, opts...)...), nil
}

// columnPositions maps each known column to its index in header (-1 if absent).
// The first occurrence wins when a header repeats.
func columnPositions(header []string) map[string]int {
	positions := make(map[string]int, len(KnownColumns))
	for _, col := range KnownColumns {
		positions[col] = -1
	}
	for i, h := range header {
		if pos, known := positions[h]; known && pos == -1 {
			positions[h] = i
		}
	}
	return positions
}

func itemFromRecord(record []string, positions map[string]int) Item {
	field := func(col string) string {
		pos := positions[col]
		if pos < 0 || pos >= len(record) {
			return ""
		}
		return record[pos]
	}

	return Item{
		Name:        field(ColumnName),
		Tags:        field(ColumnTags),
		ReviewCount: parseNumber(field(ColumnReviewCount)),
		Brand:       field(ColumnBrand),
		ImageURL:    field(ColumnImageURL),
		Rating:      parseNumber(field(ColumnRating)),
	}
}

// parseNumber returns 0 for blank or malformed numeric cells.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
