// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/middleware"
	"github.com/tomtom215/shelfmate/internal/recommend"
)

// CatalogInfo describes one served catalog.
type CatalogInfo struct {
	Source     string               `json:"source"`
	Items      int                  `json:"items"`
	Hash       string               `json:"hash"`
	LoadedAt   time.Time            `json:"loaded_at"`
	Columns    []string             `json:"columns"`
	Valid      bool                 `json:"valid"`
	LastReload catalog.ReloadResult `json:"last_reload"`
}

// CatalogStatus is the body of GET /catalog/status.
type CatalogStatus struct {
	Products CatalogInfo          `json:"products"`
	Trending *CatalogInfo         `json:"trending,omitempty"`
	Index    *recommend.IndexInfo `json:"index,omitempty"`
	Engine   recommend.Stats      `json:"engine"`
}

// ReloadStatus is the body of POST /catalog/reload.
type ReloadStatus struct {
	Products catalog.ReloadResult  `json:"products"`
	Trending *catalog.ReloadResult `json:"trending,omitempty"`
}

func catalogInfo(r *catalog.Reloader) CatalogInfo {
	cat := r.Holder().Current()
	return CatalogInfo{
		Source:     r.Source().String(),
		Items:      cat.Len(),
		Hash:       cat.Hash(),
		LoadedAt:   cat.LoadedAt(),
		Columns:    cat.Columns(),
		Valid:      cat.Validate() == nil,
		LastReload: r.LastResult(),
	}
}

// CatalogStatus handles catalog status requests
//
// @Summary Get catalog status
// @Description Returns source, size, content hash and last reload of each catalog, plus index and engine counters.
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=CatalogStatus}
// @Router /catalog/status [get]
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	status := CatalogStatus{
		Products: catalogInfo(h.products),
		Engine:   h.engine.Stats(),
	}
	if h.trending != nil {
		info := catalogInfo(h.trending)
		status.Trending = &info
	}
	if info, ok := h.engine.CurrentIndex(); ok {
		status.Index = &info
	}
	NewResponseWriter(w, r).Success(status)
}

// ReloadCatalog handles manual catalog reloads
//
// @Summary Reload catalogs
// @Description Re-reads the products and trending sources. Unchanged content is a no-op; a failed reload keeps serving the previous catalog.
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=ReloadStatus}
// @Failure 502 {object} APIResponse
// @Router /catalog/reload [post]
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()
	logger := logging.Ctx(ctx)

	var status ReloadStatus
	var failed []catalog.ReloadResult

	result, err := h.products.Reload(ctx)
	status.Products = result
	if err != nil {
		failed = append(failed, result)
	}
	if h.trending != nil {
		trending, err := h.trending.Reload(ctx)
		status.Trending = &trending
		if err != nil {
			failed = append(failed, trending)
		}
	}

	if len(failed) > 0 {
		logger.Warn().Int("failed", len(failed)).Msg("manual catalog reload failed")
		rw.ErrorWithDetails(http.StatusBadGateway, ErrCodeReloadFailed,
			"Catalog reload failed; the previous catalog is still served", status)
		return
	}

	logger.Info().
		Str("products", status.Products.Outcome).
		Int("items", status.Products.Items).
		Msg("manual catalog reload complete")
	rw.Success(status)
}

// Brands handles brand summary requests
//
// @Summary List top brands
// @Description Returns brands ordered by item count. Computed in DuckDB when the catalog is backed by it, in memory otherwise.
// @Tags Catalog
// @Produce json
// @Param limit query int false "Maximum brands (default 20)"
// @Success 200 {object} APIResponse{data=[]catalog.BrandCount}
// @Failure 400 {object} APIResponse
// @Router /catalog/brands [get]
func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BrandsRequest
	var err error
	if req.Limit, err = intParam(r.URL.Query().Get, 20, "limit"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	var brands []catalog.BrandCount
	if lister, ok := h.products.Source().(BrandLister); ok {
		brands, err = lister.TopBrands(r.Context(), req.Limit)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("brand query failed, counting in memory")
			brands = nil
		}
	}
	if brands == nil {
		brands = h.products.Holder().Current().BrandCounts(req.Limit)
	}
	rw.List(brands, len(brands))
}

// PerformanceStats handles request latency statistics
//
// @Summary Get request performance statistics
// @Description Returns per-route request counts, error counts and latency percentiles over the recent request window.
// @Tags Stats
// @Produce json
// @Success 200 {object} APIResponse{data=[]middleware.EndpointStats}
// @Failure 404 {object} APIResponse
// @Router /stats/performance [get]
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.perf == nil {
		rw.NotFound("Performance monitoring is disabled")
		return
	}
	stats := h.perf.GetStats()
	if stats == nil {
		stats = []middleware.EndpointStats{}
	}
	rw.List(stats, len(stats))
}
