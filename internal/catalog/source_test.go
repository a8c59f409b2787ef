// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const sampleCSV = `Unnamed: 0,Name,ReviewCount,Brand,ImageURL,Rating,Tags
0,A,10,Acme,a.png,4.5,red shoe running
1,B,3.0,Acme,b.png,4,red shoe walking
2,C,,Hatco,c.png,nan,"blue hat, winter"
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clean_data.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func TestParseCSV(t *testing.T) {
	t.Parallel()

	cat, err := ParseCSV(strings.NewReader(sampleCSV), WithSource("test"))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", cat.Len())
	}
	if err := cat.Validate(); err != nil {
		t.Errorf("expected valid catalog, got %v", err)
	}

	a := cat.Item(0)
	if a.Name != "A" || a.Tags != "red shoe running" || a.ReviewCount != 10 || a.Brand != "Acme" || a.ImageURL != "a.png" || a.Rating != 4.5 {
		t.Errorf("unexpected first item: %+v", a)
	}

	c := cat.Item(2)
	if c.Tags != "blue hat, winter" {
		t.Errorf("quoted field not preserved: %q", c.Tags)
	}
	if c.ReviewCount != 0 || c.Rating != 0 {
		t.Errorf("blank and NaN numbers should load as 0: %+v", c)
	}
	if !cat.HasColumn("Unnamed: 0") {
		t.Error("extra columns should still be recorded")
	}
	if cat.Source() != "test" {
		t.Errorf("expected source option to apply, got %q", cat.Source())
	}
}

func TestParseCSV_EdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantItems int
		wantErr   error
	}{
		{name: "empty input", input: "", wantItems: 0, wantErr: ErrEmpty},
		{name: "header only", input: "Name,Tags\n", wantItems: 0, wantErr: ErrEmpty},
		{name: "missing tags column", input: "Name,Brand\nA,Acme\n", wantItems: 1, wantErr: ErrMissingColumn},
		{name: "byte order mark", input: "\ufeffName,Tags\nA,red\n", wantItems: 1},
		{name: "short rows padded", input: "Name,Tags,Brand\nA,red\n", wantItems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := ParseCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseCSV failed: %v", err)
			}
			if cat.Len() != tt.wantItems {
				t.Errorf("expected %d items, got %d", tt.wantItems, cat.Len())
			}
			verr := cat.Validate()
			if tt.wantErr == nil && verr != nil {
				t.Errorf("unexpected validation error: %v", verr)
			}
			if tt.wantErr != nil && !errors.Is(verr, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, verr)
			}
		})
	}
}

func TestCSVFileSource(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, sampleCSV)
	src := NewCSVFileSource(path)

	cat, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 3 {
		t.Errorf("expected 3 items, got %d", cat.Len())
	}
	if cat.Source() != path || src.String() != path {
		t.Errorf("expected source %q, got %q", path, cat.Source())
	}
}

func TestCSVFileSource_MissingFile(t *testing.T) {
	t.Parallel()

	src := NewCSVFileSource(filepath.Join(t.TempDir(), "nope.csv"))
	if _, err := src.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestCSVFileSource_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewCSVFileSource(writeTempCSV(t, sampleCSV))
	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// failingSource is a Source that always errors.
type failingSource struct{}

func (failingSource) Load(context.Context) (*Catalog, error) {
	return nil, errors.New("disk on fire")
}

func (failingSource) String() string { return "failing" }

func TestLoadOrEmpty(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()

	cat := LoadOrEmpty(context.Background(), failingSource{}, logger)
	if cat == nil {
		t.Fatal("LoadOrEmpty must never return nil")
	}
	if cat.Len() != 0 {
		t.Errorf("expected empty catalog, got %d items", cat.Len())
	}
	if cat.Source() != "failing" {
		t.Errorf("expected source name on empty catalog, got %q", cat.Source())
	}

	ok := LoadOrEmpty(context.Background(), NewCSVFileSource(writeTempCSV(t, sampleCSV)), logger)
	if ok.Len() != 3 {
		t.Errorf("expected 3 items from good source, got %d", ok.Len())
	}

	missing := LoadOrEmpty(context.Background(), NewCSVFileSource("/definitely/not/here.csv"), logger)
	if missing.Len() != 0 {
		t.Error("missing file should produce an empty catalog")
	}
}
