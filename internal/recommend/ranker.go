// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/shelfmate/internal/catalog"
)

// DefaultTopN is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultTopN = 10

var (
	// ErrInvalidCatalog means the catalog is empty, lacks the Name or Tags
	// column, or has no usable tag text. Callers report "no recommendations".
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrItemNotFound means no item carries the exact query name.
	ErrItemNotFound = errors.New("item not found")

	// ErrIndexMismatch means the index was built from a different catalog.
	ErrIndexMismatch = errors.New("index does not match catalog")
)

// ScoredItem is a recommended item with its similarity to the query.
type ScoredItem struct {
	catalog.Item

	// Score is the cosine similarity to the query item, in [0, 1].
	Score float64 `json:"score"`

	// Position is the item's row in the catalog.
	Position int `json:"position"`
}

// Rank returns up to topN items most similar to the item named queryName,
// most similar first. Ties keep catalog order. The query row is excluded by
// its row index, so an item with identical tags still appears in the result.
//
// A non-positive topN means DefaultTopN. The result length is
// min(topN, cat.Len()-1).
func Rank(cat *catalog.Catalog, idx *Index, queryName string, topN int) ([]ScoredItem, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if idx == nil || idx.Hash() != cat.Hash() || idx.Len() != cat.Len() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, ErrIndexMismatch)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	query, ok := cat.Lookup(queryName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, queryName)
	}

	scores := idx.SimilarityRow(query)

	order := make([]int, 0, len(scores)-1)
	for i := range scores {
		if i != query {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if len(order) > topN {
		order = order[:topN]
	}

	ranked := make([]ScoredItem, len(order))
	for i, row := range order {
		ranked[i] = ScoredItem{
			Item:     cat.Item(row),
			Score:    scores[row],
			Position: row,
		}
	}
	return ranked, nil
}

// Recommend is Rank without the scores: the full item records of the topN
// items most similar to queryName, in ranked order.
func Recommend(cat *catalog.Catalog, idx *Index, queryName string, topN int) ([]catalog.Item, error) {
	ranked, err := Rank(cat, idx, queryName, topN)
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Item, len(ranked))
	for i := range ranked {
		items[i] = ranked[i].Item
	}
	return items, nil
}
