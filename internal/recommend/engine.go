// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/shelfmate/internal/cache"
	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/metrics"
)

// Engine serves recommendations over the catalog supplied by a
// catalog.Provider. Term-weight matrices are memoized per catalog content
// hash and responses are cached per (hash, item, count). It is safe for
// concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	provider catalog.Provider
	store    ResultStore

	indexes   *cache.LRU[string, *Index]
	invalid   *cache.LRU[string, error]
	responses *cache.LRU[string, *Response]
	builds    singleflight.Group

	requestCount atomic.Int64
	degraded     atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	storeHits    atomic.Int64
	indexBuilds  atomic.Int64
	buildFailed  atomic.Int64
}

// NewEngine creates an engine reading catalogs from provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider catalog.Provider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, errors.New("catalog provider is required")
	}

	return &Engine{
		config:    cfg.Clone(),
		logger:    logger.With().Str("component", "recommend").Logger(),
		provider:  provider,
		indexes:   cache.NewLRU[string, *Index](cfg.Index.MaxEntries, 0),
		invalid:   cache.NewLRU[string, error](cfg.Index.MaxEntries, 0),
		responses: cache.NewLRU[string, *Response](cfg.Cache.MaxEntries, cfg.Cache.TTL),
	}, nil
}

// SetResultStore attaches a persistent store consulted after the in-memory
// cache misses. Call before serving requests.
func (e *Engine) SetResultStore(store ResultStore) {
	e.store = store
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend answers req against the current catalog. An invalid catalog or
// unknown item yields an empty Response with Reason and Message set and a
// nil error; the only error returned is the context's.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		metrics.RecordRecommendation("canceled", time.Since(start), 0)
		return nil, err
	}

	req, capped := e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("item", req.ItemName).
		Int("top_n", req.TopN).
		Logger()

	cat := e.provider.Current()
	key := responseKey(cat.Hash(), req.ItemName, req.TopN)

	if resp := e.cachedResponse(ctx, key, req, start); resp != nil {
		resp.Metadata.TopNCapped = capped
		logger.Debug().Str("source", resp.Metadata.Source).Msg("served cached recommendations")
		metrics.RecordRecommendation("ok", time.Since(start), len(resp.Items))
		return resp, nil
	}

	resp, err := e.compute(ctx, cat, req, start)
	if err != nil {
		metrics.RecordRecommendation("canceled", time.Since(start), 0)
		return nil, err
	}
	// cache reads overwrite this per request
	resp.Metadata.TopNCapped = capped
	if capped {
		logger.Debug().Int("max_top_n", e.config.Limits.MaxTopN).Msg("top_n lowered to the configured maximum")
	}

	if resp.Degraded() {
		e.degraded.Add(1)
		logger.Debug().Str("reason", resp.Reason).Msg("no recommendations")
		metrics.RecordRecommendation(outcomeLabel(resp.Reason), time.Since(start), 0)
		return resp, nil
	}

	e.storeResponse(ctx, key, resp, logger)
	logger.Debug().
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	metrics.RecordRecommendation("ok", time.Since(start), len(resp.Items))
	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed. It
// reports whether TopN was lowered to Limits.MaxTopN.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, bool) {
	capped := false
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.TopN <= 0 {
		req.TopN = e.config.Limits.DefaultTopN
	}
	if req.TopN > e.config.Limits.MaxTopN {
		req.TopN = e.config.Limits.MaxTopN
		capped = true
	}
	return req, capped
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) compute(ctx context.Context, cat *catalog.Catalog, req Request, start time.Time) (*Response, error) {
	meta := ResponseMetadata{
		RequestID:   req.RequestID,
		ItemName:    req.ItemName,
		TopN:        req.TopN,
		CatalogHash: cat.Hash(),
		CatalogSize: cat.Len(),
		Source:      "computed",
	}

	idx, err := e.Index(ctx, cat)
	if err == nil {
		meta.Dimensions = idx.Dimensions()
		var ranked []ScoredItem
		ranked, err = Rank(cat, idx, req.ItemName, req.TopN)
		if err == nil {
			return finish(&Response{Items: ranked, Metadata: meta}, start), nil
		}
	}

	switch {
	case errors.Is(err, ErrInvalidCatalog):
		return finish(&Response{
			Items:    []ScoredItem{},
			Reason:   ReasonInvalidCatalog,
			Message:  MessageNoRecommendations,
			Metadata: meta,
		}, start), nil
	case errors.Is(err, ErrItemNotFound):
		return finish(&Response{
			Items:    []ScoredItem{},
			Reason:   ReasonItemNotFound,
			Message:  MessageItemNotFound,
			Metadata: meta,
		}, start), nil
	default:
		return nil, err
	}
}

func finish(resp *Response, start time.Time) *Response {
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return resp
}

// Index returns the term-weight matrix for cat, building it at most once per
// content hash. Concurrent callers for the same hash share one build. A
// catalog whose build failed with ErrInvalidCatalog is not built again until
// its hash is dropped by OnCatalogChange.
func (e *Engine) Index(ctx context.Context, cat *catalog.Catalog) (*Index, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	hash := cat.Hash()
	if idx, ok := e.indexes.Get(hash); ok {
		metrics.RecordCacheLookup("index", true)
		return idx, nil
	}
	if err, ok := e.invalid.Get(hash); ok {
		metrics.RecordCacheLookup("index", true)
		return nil, err
	}
	metrics.RecordCacheLookup("index", false)

	ch := e.builds.DoChan(hash, func() (interface{}, error) {
		if idx, ok := e.indexes.Get(hash); ok {
			return idx, nil
		}
		if err, ok := e.invalid.Get(hash); ok {
			return nil, err
		}
		idx, err := BuildIndex(cat)
		if err != nil {
			if errors.Is(err, ErrInvalidCatalog) {
				e.buildFailed.Add(1)
				e.invalid.Add(hash, err)
				e.logger.Warn().Err(err).Str("catalog_hash", hash).Msg("catalog cannot be indexed")
			}
			return nil, err
		}
		e.indexBuilds.Add(1)
		e.indexes.Add(hash, idx)
		metrics.RecordIndexBuild(idx.BuildDuration(), idx.Dimensions())
		e.logger.Info().
			Str("catalog_hash", hash).
			Int("items", idx.Len()).
			Int("dimensions", idx.Dimensions()).
			Dur("duration", idx.BuildDuration()).
			Msg("built term-weight index")
		return idx, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Index), nil
	}
}

// Warm builds the index for the current catalog ahead of the first request.
func (e *Engine) Warm(ctx context.Context) error {
	_, err := e.Index(ctx, e.provider.Current())
	return err
}

// CurrentIndex describes the index of the current catalog, if built.
func (e *Engine) CurrentIndex() (IndexInfo, bool) {
	cat := e.provider.Current()
	idx, ok := e.indexes.Get(cat.Hash())
	if !ok {
		return IndexInfo{}, false
	}
	return IndexInfo{
		CatalogHash:   idx.Hash(),
		Items:         idx.Len(),
		Dimensions:    idx.Dimensions(),
		BuiltAt:       idx.BuiltAt(),
		BuildDuration: idx.BuildDuration(),
	}, true
}

// OnCatalogChange drops cached state that does not belong to the catalog
// with content hash current. Called after a reload swapped catalogs.
func (e *Engine) OnCatalogChange(ctx context.Context, current string) {
	indexes := e.indexes.RemoveIf(func(hash string) bool { return hash != current })
	e.invalid.RemoveIf(func(hash string) bool { return hash != current })
	responses := e.responses.RemoveIf(func(key string) bool {
		return !strings.HasPrefix(key, current+keySep)
	})

	purged := 0
	if e.store != nil {
		n, err := e.store.PurgeExcept(ctx, current)
		if err != nil {
			metrics.RecordResultStoreError("purge")
			e.logger.Warn().Err(err).Msg("failed to purge stale stored results")
		}
		purged = n
	}

	e.logger.Info().
		Str("catalog_hash", current).
		Int("indexes_dropped", indexes).
		Int("responses_dropped", responses).
		Int("stored_purged", purged).
		Msg("invalidated caches for new catalog")
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:       e.requestCount.Load(),
		Degraded:       e.degraded.Load(),
		CacheHits:      e.cacheHits.Load(),
		CacheMisses:    e.cacheMisses.Load(),
		StoreHits:      e.storeHits.Load(),
		IndexBuilds:    e.indexBuilds.Load(),
		IndexFailures:  e.buildFailed.Load(),
		IndexCacheSize: e.indexes.Len(),
		ResponseCached: e.responses.Len(),
	}
}

// cachedResponse checks the in-memory cache, then the persistent store.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cachedResponse(ctx context.Context, key string, req Request, start time.Time) *Response {
	if !e.config.Cache.Enabled {
		return nil
	}

	if resp, ok := e.responses.Get(key); ok {
		e.cacheHits.Add(1)
		metrics.RecordCacheLookup("response", true)
		return copyResponse(resp, req.RequestID, "cache", start)
	}
	e.cacheMisses.Add(1)
	metrics.RecordCacheLookup("response", false)

	if e.store == nil {
		return nil
	}
	resp, ok, err := e.store.Get(ctx, key)
	if err != nil {
		metrics.RecordResultStoreError("get")
		e.logger.Warn().Err(err).Str("key", key).Msg("result store lookup failed")
		return nil
	}
	metrics.RecordCacheLookup("result_store", ok)
	if !ok {
		return nil
	}
	e.storeHits.Add(1)
	e.responses.Add(key, resp)
	return copyResponse(resp, req.RequestID, "store", start)
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) storeResponse(ctx context.Context, key string, resp *Response, logger zerolog.Logger) {
	if !e.config.Cache.Enabled {
		return
	}
	e.responses.Add(key, resp)

	if e.store == nil {
		return
	}
	if err := e.store.Put(ctx, key, resp); err != nil {
		metrics.RecordResultStoreError("put")
		logger.Warn().Err(err).Msg("failed to persist recommendations")
	}
}

// copyResponse returns a per-request copy so callers never share the cached
// slice or metadata.
func copyResponse(resp *Response, requestID, source string, start time.Time) *Response {
	items := make([]ScoredItem, len(resp.Items))
	copy(items, resp.Items)

	out := &Response{
		Items:    items,
		Reason:   resp.Reason,
		Message:  resp.Message,
		Metadata: resp.Metadata,
	}
	out.Metadata.RequestID = requestID
	out.Metadata.CacheHit = true
	out.Metadata.Source = source
	return finish(out, start)
}

const keySep = "|"

// responseKey starts with the catalog hash so stale entries can be found by prefix.
func responseKey(hash, name string, topN int) string {
	return hash + keySep + strconv.Itoa(topN) + keySep + name
}

func outcomeLabel(reason string) string {
	switch reason {
	case ReasonInvalidCatalog:
		return "invalid_catalog"
	case ReasonItemNotFound:
		return "item_not_found"
	default:
		return "ok"
	}
}
