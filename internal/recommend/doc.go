// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package recommend implements content-based product recommendations over
// the tag text of a catalog.
//
// # Term-Weight Matrix
//
// BuildIndex tokenises every item's tags (lowercase runs of two or more word
// characters, English stop-words removed), builds a sorted vocabulary and
// weights each term by raw count times smoothed inverse document frequency:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// Each row is L2-normalised, so cosine similarity reduces to a dot product.
// The build is a pure function of the catalog: the same content always gives
// the same vocabulary order and weights.
//
// # Ranking
//
// Rank scores the query row against every row (query-vs-all, never the full
// pairwise matrix), stable-sorts by score descending so ties keep catalog
// order, drops the query row by index and keeps the first N. Identity-based
// exclusion matters when another item has identical tags: both score 1.0 and
// only the true query row must go.
//
// # Engine
//
// Engine wraps the pure functions for serving:
//
//   - catalogs come from an injected catalog.Provider, never a global
//   - indexes are memoized per catalog content hash; concurrent requests for a
//     new hash share one build
//   - responses are cached in an LRU with TTL and optionally persisted through
//     a ResultStore
//   - ErrInvalidCatalog and ErrItemNotFound become an empty Response with a
//     Reason and Message rather than an error
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), holder, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{ItemName: "A", TopN: 5})
//	if resp.Degraded() {
//	    fmt.Println(resp.Message)
//	}
package recommend
