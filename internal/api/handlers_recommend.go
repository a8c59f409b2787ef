// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/recommend"
)

// Product is a catalog item as rendered by the API.
type Product struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Brand       string   `json:"brand"`
	ImageURL    string   `json:"image_url"`
	Rating      float64  `json:"rating"`
	ReviewCount float64  `json:"review_count"`
	Tags        string   `json:"tags,omitempty"`
	Score       *float64 `json:"score,omitempty"`
}

// newProduct converts item for output. A zero truncate means no truncation.
func newProduct(item catalog.Item, truncate int) Product {
	displayName := item.Name
	if truncate > 0 {
		displayName = catalog.Truncate(item.Name, truncate)
	}
	return Product{
		Name:        item.Name,
		DisplayName: displayName,
		Brand:       item.Brand,
		ImageURL:    item.ImageURL,
		Rating:      item.Rating,
		ReviewCount: item.ReviewCount,
		Tags:        item.Tags,
	}
}

// RecommendationsData is the body of a recommendations response. When no
// recommendations can be made, Items is empty and Reason and Message say why.
type RecommendationsData struct {
	Query       string    `json:"query"`
	TopN        int       `json:"top_n"`
	Items       []Product `json:"items"`
	Reason      string    `json:"reason,omitempty"`
	Message     string    `json:"message,omitempty"`
	CatalogHash string    `json:"catalog_hash,omitempty"`
	Source      string    `json:"source"`
	CacheHit    bool      `json:"cache_hit"`
}

func newRecommendationsData(resp *recommend.Response, truncate int) RecommendationsData {
	items := make([]Product, len(resp.Items))
	for i, scored := range resp.Items {
		score := scored.Score
		items[i] = newProduct(scored.Item, truncate)
		items[i].Score = &score
	}
	return RecommendationsData{
		Query:       resp.Metadata.ItemName,
		TopN:        resp.Metadata.TopN,
		Items:       items,
		Reason:      resp.Reason,
		Message:     resp.Message,
		CatalogHash: resp.Metadata.CatalogHash,
		Source:      resp.Metadata.Source,
		CacheHit:    resp.Metadata.CacheHit,
	}
}

// Recommendations handles recommendation requests
//
// @Summary Recommend similar products
// @Description Returns up to top_n products whose tags are most similar to the named product, most similar first.
// @Description An unknown product or an unusable catalog yields 200 with an empty list, a reason and a message.
// @Description prod and nbr are accepted as aliases of item_name and top_n.
// @Tags Recommendations
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param item_name query string true "Exact product name"
// @Param top_n query int false "Number of recommendations (default 10)"
// @Param truncate query int false "Truncate display_name to this many characters"
// @Success 200 {object} APIResponse{data=RecommendationsData}
// @Failure 400 {object} APIResponse
// @Failure 504 {object} APIResponse
// @Router /recommendations [get]
// @Router /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseRecommendationRequest(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) || !h.checkTopN(rw, "top_n", req.TopN) {
		return
	}

	h.serveRecommendations(rw, r, req.ItemName, req.TopN, req.Truncate)
}

// Similar handles path-style recommendation requests
//
// @Summary Products similar to a product
// @Description Path form of /recommendations. The product name is URL-escaped in the path.
// @Tags Recommendations
// @Produce json
// @Param name path string true "Exact product name"
// @Param k query int false "Number of recommendations (default 10)"
// @Param truncate query int false "Truncate display_name to this many characters"
// @Success 200 {object} APIResponse{data=RecommendationsData}
// @Failure 400 {object} APIResponse
// @Router /recommendations/similar/{name} [get]
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	name, err := pathParam(r, "name")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	get := r.URL.Query().Get
	req := SimilarRequest{ItemName: name}
	if req.K, err = intParam(get, 0, "k", "top_n"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if req.Truncate, err = intParam(get, 0, "truncate"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) || !h.checkTopN(rw, "k", req.K) {
		return
	}

	h.serveRecommendations(rw, r, req.ItemName, req.K, req.Truncate)
}

// checkTopN rejects counts above the engine's configured maximum.
func (h *Handler) checkTopN(rw *ResponseWriter, field string, n int) bool {
	if max := h.engine.Config().Limits.MaxTopN; n > max {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("%s must be at most %d", field, max),
			map[string]interface{}{"field": field, "tag": "max", "value": n})
		return false
	}
	return true
}

func (h *Handler) serveRecommendations(rw *ResponseWriter, r *http.Request, name string, topN, truncate int) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		ItemName:  name,
		TopN:      topN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "Recommendation request timed out")
			return
		}
		rw.InternalError("Failed to generate recommendations", err)
		return
	}

	rw.Success(newRecommendationsData(resp, truncate))
}

// pathParam returns the decoded chi URL parameter. chi matches against
// RawPath when it is set, so the parameter is still escaped only then.
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	value, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a valid path segment", errBadParam, key)
	}
	return value, nil
}
