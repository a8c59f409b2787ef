// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"errors"
	"testing"
	"time"
)

func sampleItems() []Item {
	return []Item{
		{Name: "A", Tags: "red shoe running", ReviewCount: 10, Brand: "Acme", ImageURL: "a.png", Rating: 4.5},
		{Name: "B", Tags: "red shoe walking", ReviewCount: 3, Brand: "Acme", ImageURL: "b.png", Rating: 4},
		{Name: "C", Tags: "blue hat winter", ReviewCount: 0, Brand: "Hatco", ImageURL: "c.png", Rating: 0},
	}
}

func TestNew_LookupUsesFirstMatch(t *testing.T) {
	t.Parallel()

	items := append(sampleItems(), Item{Name: "A", Tags: "duplicate name"})
	cat := New(items)

	i, ok := cat.Lookup("A")
	if !ok {
		t.Fatal("expected to find A")
	}
	if i != 0 {
		t.Errorf("expected first row 0, got %d", i)
	}
	if _, ok := cat.Lookup("a"); ok {
		t.Error("lookup must be case-sensitive")
	}
	if _, ok := cat.Lookup("missing"); ok {
		t.Error("expected missing name to be absent")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	items := sampleItems()
	cat := New(items)
	items[0].Name = "mutated"

	if cat.Item(0).Name != "A" {
		t.Error("catalog must not alias caller slice")
	}

	out := cat.Items()
	out[1].Name = "mutated"
	if cat.Item(1).Name != "B" {
		t.Error("Items must return a copy")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cat     *Catalog
		wantErr error
	}{
		{name: "valid", cat: New(sampleItems())},
		{name: "nil catalog", cat: nil, wantErr: ErrEmpty},
		{name: "empty catalog", cat: Empty(), wantErr: ErrEmpty},
		{
			name:    "missing tags column",
			cat:     New(sampleItems(), WithColumns([]string{"Name", "Brand"})),
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing name column",
			cat:     New(sampleItems(), WithColumns([]string{"Tags"})),
			wantErr: ErrMissingColumn,
		},
		{
			name: "optional columns absent",
			cat:  New(sampleItems(), WithColumns([]string{"Name", "Tags"})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := New(sampleItems(), WithSource("one.csv"), WithLoadedAt(time.Unix(1, 0)))
	b := New(sampleItems(), WithSource("two.csv"), WithLoadedAt(time.Unix(2, 0)))
	if a.Hash() != b.Hash() {
		t.Error("identical content must hash identically regardless of source")
	}
	if len(a.Hash()) != 16 {
		t.Errorf("expected 16 hex chars, got %q", a.Hash())
	}

	changed := sampleItems()
	changed[2].Rating = 1
	if New(changed).Hash() == a.Hash() {
		t.Error("changing a rating must change the hash")
	}

	reordered := sampleItems()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	if New(reordered).Hash() == a.Hash() {
		t.Error("row order is part of the content")
	}

	fewerColumns := New(sampleItems(), WithColumns([]string{"Name", "Tags"}))
	if fewerColumns.Hash() == a.Hash() {
		t.Error("column set is part of the content")
	}
}

func TestHead(t *testing.T) {
	t.Parallel()

	cat := New(sampleItems())
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 0},
		{n: -1, want: 0},
		{n: 2, want: 2},
		{n: 8, want: 3},
	}
	for _, tt := range tests {
		if got := len(cat.Head(tt.n)); got != tt.want {
			t.Errorf("Head(%d) returned %d items, want %d", tt.n, got, tt.want)
		}
	}

	var nilCat *Catalog
	if got := nilCat.Head(5); got == nil || len(got) != 0 {
		t.Error("nil catalog Head should return an empty non-nil slice")
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cat := New(sampleItems(), WithSource("models/clean_data.csv"), WithLoadedAt(at),
		WithColumns([]string{"Name", "Tags", "Brand"}))

	if cat.Source() != "models/clean_data.csv" {
		t.Errorf("unexpected source %q", cat.Source())
	}
	if !cat.LoadedAt().Equal(at) {
		t.Errorf("unexpected loaded at %v", cat.LoadedAt())
	}
	if !cat.HasColumn("Brand") || cat.HasColumn("Rating") {
		t.Error("unexpected column set")
	}
	if got := cat.Columns(); len(got) != 3 || got[2] != "Brand" {
		t.Errorf("unexpected columns %v", got)
	}
	if got := cat.Tags(); len(got) != 3 || got[1] != "red shoe walking" {
		t.Errorf("unexpected tags %v", got)
	}
}

func TestHolder(t *testing.T) {
	t.Parallel()

	h := NewHolder(nil)
	if h.Current() == nil || h.Current().Len() != 0 {
		t.Fatal("nil initial catalog should become empty")
	}

	next := New(sampleItems())
	prev := h.Swap(next)
	if prev.Len() != 0 {
		t.Error("expected previous catalog to be the empty one")
	}
	if h.Current() != next {
		t.Error("expected swapped catalog to be current")
	}
	if h.Swaps() != 1 {
		t.Errorf("expected 1 swap, got %d", h.Swaps())
	}

	var p Provider = Static{Catalog: next}
	if p.Current() != next {
		t.Error("static provider should return its catalog")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		length int
		want   string
	}{
		{"OPI Nail Lacquer Polish", 8, "OPI Nail..."},
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"crème brûlée", 5, "crème..."},
		{"anything", 0, "..."},
		{"", 0, ""},
		{"anything", -1, "anything"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.length); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.length, got, tt.want)
		}
	}
}

func TestBrandCounts(t *testing.T) {
	t.Parallel()

	cat := New(append(sampleItems(), Item{Name: "D", Tags: "scarf", Brand: "Hatco"}, Item{Name: "E", Tags: "gloves", Brand: "Zed"}))

	got := cat.BrandCounts(2)
	if len(got) != 2 {
		t.Fatalf("expected 2 brands, got %v", got)
	}
	if got[0] != (BrandCount{Brand: "Acme", Items: 2}) || got[1] != (BrandCount{Brand: "Hatco", Items: 2}) {
		t.Errorf("expected ties broken by name, got %v", got)
	}
	if all := cat.BrandCounts(0); len(all) != 3 {
		t.Errorf("default limit should cover all 3 brands, got %v", all)
	}

	var nilCat *Catalog
	if got := nilCat.BrandCounts(5); len(got) != 0 {
		t.Errorf("nil catalog should have no brands, got %v", got)
	}
}
