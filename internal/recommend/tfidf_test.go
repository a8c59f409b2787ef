// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/shelfmate/internal/catalog"
)

const epsilon = 1e-9

func shoeCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{Name: "A", Tags: "red shoe running", Brand: "Acme", Rating: 4.5},
		{Name: "B", Tags: "red shoe walking", Brand: "Acme", Rating: 4},
		{Name: "C", Tags: "blue hat winter", Brand: "Hatco"},
	})
}

func mustBuild(t *testing.T, cat *catalog.Catalog) *Index {
	t.Helper()
	idx, err := BuildIndex(cat)
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	return idx
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "lowercases", text: "Red SHOE", want: []string{"red", "shoe"}},
		{name: "drops stop words", text: "the shoe for running", want: []string{"shoe", "running"}},
		{name: "drops single characters", text: "a b shoe x", want: []string{"shoe"}},
		{name: "splits punctuation", text: "nail,polish;top-coat", want: []string{"nail", "polish", "top", "coat"}},
		{name: "keeps digits", text: "spf 50 sunscreen", want: []string{"spf", "50", "sunscreen"}},
		{name: "unicode letters", text: "crème brûlée", want: []string{"crème", "brûlée"}},
		{name: "keeps duplicates", text: "red red", want: []string{"red", "red"}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildIndex_Weights(t *testing.T) {
	t.Parallel()

	idx := mustBuild(t, shoeCatalog())

	wantVocab := []string{"blue", "hat", "red", "running", "shoe", "walking", "winter"}
	if !reflect.DeepEqual(idx.Vocabulary(), wantVocab) {
		t.Fatalf("vocabulary = %v, want %v", idx.Vocabulary(), wantVocab)
	}
	if idx.Dimensions() != len(wantVocab) || idx.Len() != 3 {
		t.Fatalf("unexpected shape %dx%d", idx.Len(), idx.Dimensions())
	}

	// red and shoe appear in 2 of 3 items, running in 1.
	common := math.Log(4.0/3.0) + 1
	rare := math.Log(4.0/2.0) + 1
	norm := math.Sqrt(2*common*common + rare*rare)

	w := idx.Weights(0)
	if len(w) != 3 {
		t.Fatalf("expected 3 non-zero weights, got %v", w)
	}
	if math.Abs(w["red"]-common/norm) > epsilon {
		t.Errorf("red weight = %f, want %f", w["red"], common/norm)
	}
	if math.Abs(w["running"]-rare/norm) > epsilon {
		t.Errorf("running weight = %f, want %f", w["running"], rare/norm)
	}
	if _, ok := w["hat"]; ok {
		t.Error("absent terms must have no weight")
	}

	vec := idx.Vector(0)
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if math.Abs(sum-1) > epsilon {
		t.Errorf("row should be unit length, got squared norm %f", sum)
	}
	if vec[0] != 0 {
		t.Errorf("blue should be 0 for A, got %f", vec[0])
	}
}

func TestBuildIndex_RepeatedTermsCountTowardsWeight(t *testing.T) {
	t.Parallel()

	idx := mustBuild(t, catalog.New([]catalog.Item{
		{Name: "A", Tags: "red red shoe"},
		{Name: "B", Tags: "blue shoe"},
	}))
	w := idx.Weights(0)
	if w["red"] <= w["shoe"] {
		t.Errorf("repeated rarer term should outweigh common term: %v", w)
	}
}

func TestBuildIndex_Deterministic(t *testing.T) {
	t.Parallel()

	a := mustBuild(t, shoeCatalog())
	b := mustBuild(t, shoeCatalog())

	if !reflect.DeepEqual(a.Vocabulary(), b.Vocabulary()) {
		t.Fatal("vocabulary order differs between builds")
	}
	for i := 0; i < a.Len(); i++ {
		if !reflect.DeepEqual(a.Vector(i), b.Vector(i)) {
			t.Errorf("row %d differs between builds", i)
		}
	}
	if a.Hash() != shoeCatalog().Hash() {
		t.Error("index should carry the catalog hash")
	}
}

func TestBuildIndex_InvalidCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cat  *catalog.Catalog
	}{
		{name: "nil", cat: nil},
		{name: "empty", cat: catalog.Empty()},
		{name: "missing tags column", cat: catalog.New(
			[]catalog.Item{{Name: "A"}}, catalog.WithColumns([]string{"Name", "Brand"}))},
		{name: "only stop words", cat: catalog.New([]catalog.Item{
			{Name: "A", Tags: "the and of"},
			{Name: "B", Tags: ""},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildIndex(tt.cat); !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestSimilarity_SymmetricAndSelf(t *testing.T) {
	t.Parallel()

	cat := catalog.New([]catalog.Item{
		{Name: "A", Tags: "red shoe running"},
		{Name: "B", Tags: "red shoe walking"},
		{Name: "C", Tags: "blue hat winter"},
		{Name: "D", Tags: "red hat, wool"},
		{Name: "E", Tags: ""},
	})
	idx := mustBuild(t, cat)

	for a := 0; a < idx.Len(); a++ {
		for b := 0; b < idx.Len(); b++ {
			ab, ba := idx.Similarity(a, b), idx.Similarity(b, a)
			if ab != ba {
				t.Errorf("sim(%d,%d)=%f != sim(%d,%d)=%f", a, b, ab, b, a, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("sim(%d,%d)=%f out of [0,1]", a, b, ab)
			}
		}
	}

	for i := 0; i < 4; i++ {
		if got := idx.Similarity(i, i); math.Abs(got-1) > epsilon {
			t.Errorf("self similarity of row %d = %f, want 1", i, got)
		}
	}
	if got := idx.Similarity(4, 4); got != 0 {
		t.Errorf("item with no terms should score 0, got %f", got)
	}
	if got := idx.Similarity(0, 2); got != 0 {
		t.Errorf("no shared terms should score 0, got %f", got)
	}
	if idx.Similarity(0, 1) <= idx.Similarity(0, 3) {
		t.Error("A should be closer to B than to D")
	}
}

func TestSimilarityRow(t *testing.T) {
	t.Parallel()

	idx := mustBuild(t, shoeCatalog())
	row := idx.SimilarityRow(0)
	if len(row) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(row))
	}
	for i, score := range row {
		if score != idx.Similarity(0, i) {
			t.Errorf("row score %d mismatch", i)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	t.Parallel()

	for _, w := range []string{"the", "and", "yourselves", "whereupon"} {
		if !IsStopWord(w) {
			t.Errorf("%q should be a stop word", w)
		}
	}
	for _, w := range []string{"shoe", "polish", "The"} {
		if IsStopWord(w) {
			t.Errorf("%q should not be a stop word", w)
		}
	}
	if n := len(englishStopWords); n != 318 {
		t.Errorf("expected 318 stop words, got %d", n)
	}
}
