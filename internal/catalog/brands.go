// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import "sort"

// BrandCounts summarises the catalog by brand, largest first, ties by
// brand name. It is the in-memory counterpart of DuckDBSource.TopBrands.
func (c *Catalog) BrandCounts(limit int) []BrandCount {
	if c == nil {
		return []BrandCount{}
	}
	if limit <= 0 {
		limit = 10
	}
	counts := make(map[string]int)
	for _, item := range c.items {
		counts[item.Brand]++
	}

	out := make([]BrandCount, 0, len(counts))
	for brand, n := range counts {
		out = append(out, BrandCount{Brand: brand, Items: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Items != out[j].Items {
			return out[i].Items > out[j].Items
		}
		return out[i].Brand < out[j].Brand
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
