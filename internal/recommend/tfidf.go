// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/shelfmate/internal/catalog"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and returns its tokens in order, stop-words removed.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// sparseVector is an L2-normalised row of the term-weight matrix. terms is
// sorted ascending and parallel to weights.
type sparseVector struct {
	terms   []int
	weights []float64
}

func (v sparseVector) empty() bool {
	return len(v.terms) == 0
}

// dot assumes both vectors have sorted term indices.
func (v sparseVector) dot(o sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.terms) && j < len(o.terms) {
		switch {
		case v.terms[i] == o.terms[j]:
			sum += v.weights[i] * o.weights[j]
			i++
			j++
		case v.terms[i] < o.terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Index is the term-weight matrix of a catalog: one L2-normalised TF-IDF
// vector per item over a sorted vocabulary. An Index is immutable and safe
// for concurrent reads.
type Index struct {
	hash       string
	vocabulary []string
	idf        []float64
	rows       []sparseVector
	builtAt    time.Time
	duration   time.Duration
}

// BuildIndex computes the term-weight matrix for cat.
//
// weight(item, term) = count(term in item tags) * idf(term), with
// idf(t) = ln((1+N)/(1+df(t))) + 1, then each row is scaled to unit length.
// The vocabulary is sorted, so the same catalog always yields the same
// dimensions and weights.
//
// Returns ErrInvalidCatalog when the catalog is empty, lacks the Name or Tags
// column, or its tags contain no vocabulary terms at all.
func BuildIndex(cat *catalog.Catalog) (*Index, error) {
	start := time.Now()
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	docs := cat.Tags()
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, tok := range Tokenize(doc) {
			tf[tok]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	if len(df) == 0 {
		return nil, fmt.Errorf("%w: tags contain no vocabulary terms", ErrInvalidCatalog)
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	position := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(docs))
	for i, term := range vocabulary {
		position[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]sparseVector, len(docs))
	for i, tf := range counts {
		rows[i] = weightRow(tf, position, idf)
	}

	return &Index{
		hash:       cat.Hash(),
		vocabulary: vocabulary,
		idf:        idf,
		rows:       rows,
		builtAt:    time.Now(),
		duration:   time.Since(start),
	}, nil
}

func weightRow(tf map[string]int, position map[string]int, idf []float64) sparseVector {
	if len(tf) == 0 {
		return sparseVector{}
	}

	type entry struct {
		term  int
		count int
	}
	entries := make([]entry, 0, len(tf))
	for term, count := range tf {
		entries = append(entries, entry{term: position[term], count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].term < entries[j].term })

	terms := make([]int, len(entries))
	weights := make([]float64, len(entries))
	var norm float64
	for i, e := range entries {
		w := float64(e.count) * idf[e.term]
		terms[i] = e.term
		weights[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range weights {
		weights[i] /= norm
	}
	return sparseVector{terms: terms, weights: weights}
}

// Hash returns the content hash of the catalog the index was built from.
func (x *Index) Hash() string {
	return x.hash
}

// Len returns the number of rows (items).
func (x *Index) Len() int {
	return len(x.rows)
}

// Dimensions returns the vocabulary size.
func (x *Index) Dimensions() int {
	return len(x.vocabulary)
}

// Vocabulary returns a copy of the sorted vocabulary.
func (x *Index) Vocabulary() []string {
	return append([]string(nil), x.vocabulary...)
}

// BuiltAt returns when the index was built.
func (x *Index) BuiltAt() time.Time {
	return x.builtAt
}

// BuildDuration returns how long the build took.
func (x *Index) BuildDuration() time.Duration {
	return x.duration
}

// Weights returns the non-zero weights of row i keyed by term.
func (x *Index) Weights(i int) map[string]float64 {
	row := x.rows[i]
	out := make(map[string]float64, len(row.terms))
	for k, idx := range row.terms {
		out[x.vocabulary[idx]] = row.weights[k]
	}
	return out
}

// Vector returns row i as a dense vector over the vocabulary.
func (x *Index) Vector(i int) []float64 {
	dense := make([]float64, len(x.vocabulary))
	row := x.rows[i]
	for k, idx := range row.terms {
		dense[idx] = row.weights[k]
	}
	return dense
}

// Similarity returns the cosine similarity of rows a and b, in [0, 1].
// A row with no vocabulary terms has similarity 0 with everything.
func (x *Index) Similarity(a, b int) float64 {
	ra, rb := x.rows[a], x.rows[b]
	if ra.empty() || rb.empty() {
		return 0
	}
	return clampUnit(ra.dot(rb))
}

// SimilarityRow scores row q against every row, in catalog order.
func (x *Index) SimilarityRow(q int) []float64 {
	scores := make([]float64, len(x.rows))
	for i := range x.rows {
		scores[i] = x.Similarity(q, i)
	}
	return scores
}

// clampUnit absorbs rounding drift on normalised dot products.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
