// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"context"
	"time"
)

// Reason values explain an empty response.
const (
	ReasonInvalidCatalog = "invalid catalog"
	ReasonItemNotFound   = "item not found"
)

// User-facing messages for degraded responses.
const (
	MessageNoRecommendations = "no recommendations available for this product"
	MessageItemNotFound      = "item not found"
)

// Request asks for items similar to a named item.
type Request struct {
	// ItemName must match an item name exactly (case-sensitive).
	ItemName string `json:"item_name"`

	// TopN is how many items to return. Zero or negative means the
	// configured default. Values above Limits.MaxTopN are lowered to it and
	// the response reports TopNCapped; the HTTP API rejects them instead.
	TopN int `json:"top_n"`

	// RequestID is used for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the outcome of a recommendation request. When no
// recommendations can be made, Items is empty and Reason and Message say why.
type Response struct {
	// Items is the ranked list, most similar first.
	Items []ScoredItem `json:"items"`

	// Reason is a machine-readable cause for an empty result
	// (ReasonInvalidCatalog, ReasonItemNotFound), empty on success.
	Reason string `json:"reason,omitempty"`

	// Message is the human-readable counterpart of Reason.
	Message string `json:"message,omitempty"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// Degraded reports whether the response carries no recommendations because
// of an invalid catalog or unknown item.
func (r *Response) Degraded() bool {
	return r.Reason != ""
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	ItemName    string    `json:"item_name"`
	TopN        int       `json:"top_n"`
	TopNCapped  bool      `json:"top_n_capped,omitempty"`
	CatalogHash string    `json:"catalog_hash,omitempty"`
	CatalogSize int       `json:"catalog_size"`
	Dimensions  int       `json:"dimensions"`
	LatencyMS   int64     `json:"latency_ms"`
	CacheHit    bool      `json:"cache_hit"`
	Source      string    `json:"source"` // "computed", "cache", "store"
	Timestamp   time.Time `json:"timestamp"`
}

// ResultStore persists computed responses across restarts. Keys embed the
// catalog content hash, so entries for a replaced catalog are simply never
// read again and can be purged with PurgeExcept.
type ResultStore interface {
	Get(ctx context.Context, key string) (*Response, bool, error)
	Put(ctx context.Context, key string, resp *Response) error
	PurgeExcept(ctx context.Context, catalogHash string) (int, error)
}

// Stats reports engine counters.
type Stats struct {
	Requests       int64 `json:"requests"`
	Degraded       int64 `json:"degraded"`
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`
	StoreHits      int64 `json:"store_hits"`
	IndexBuilds    int64 `json:"index_builds"`
	IndexFailures  int64 `json:"index_failures"`
	IndexCacheSize int   `json:"index_cache_size"`
	ResponseCached int   `json:"response_cache_size"`
}

// IndexInfo describes the index backing the current catalog.
type IndexInfo struct {
	CatalogHash   string        `json:"catalog_hash"`
	Items         int           `json:"items"`
	Dimensions    int           `json:"dimensions"`
	BuiltAt       time.Time     `json:"built_at"`
	BuildDuration time.Duration `json:"build_duration_ns"`
}
