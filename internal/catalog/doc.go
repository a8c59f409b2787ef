// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package catalog loads and holds the product catalog that recommendations are
computed over.

# Overview

A Catalog is an immutable, ordered list of Items (Name, Tags, ReviewCount,
Brand, ImageURL, Rating). Name lookup resolves to the first row with that name,
so duplicate names in the source are tolerated. Every catalog carries an
xxhash64 content hash; the recommendation engine keys its TF-IDF index cache on
that hash, so two loads of identical content share one index.

# Sources

Three Source implementations exist:

  - CSVFileSource reads a local CSV with encoding/csv
  - DuckDBSource ingests a local CSV through DuckDB's read_csv into a table,
    then reads it back in file order
  - HTTPSource downloads a CSV, guarded by a sony/gobreaker circuit breaker

LoadOrEmpty wraps any Source with the loader contract: a failed load is logged
and replaced by an empty catalog, never propagated.

# Sharing

Holder publishes the current catalog through an atomic pointer. Readers call
Current and keep the returned value for the duration of a request; reloads
swap in a new value without locking readers out.

# Example

	src := catalog.NewCSVFileSource("models/clean_data.csv")
	holder := catalog.NewHolder(catalog.LoadOrEmpty(ctx, src, logger))

	cat := holder.Current()
	if i, ok := cat.Lookup("Sparkle Nail Polish"); ok {
	    fmt.Println(cat.Item(i).Brand)
	}
*/
package catalog
