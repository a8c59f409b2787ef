// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"net/http"
)

// ProductDetail is the body of GET /products/{name}.
type ProductDetail struct {
	Product
	Position int `json:"position"`
}

// Trending handles trending product requests
//
// @Summary List trending products
// @Description Returns the first limit rows of the trending catalog in file order.
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products (default 8)"
// @Param truncate query int false "Truncate display_name to this many characters"
// @Success 200 {object} APIResponse{data=[]Product}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /products/trending [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.trending == nil {
		rw.NotFound("Trending products are not configured")
		return
	}

	get := r.URL.Query().Get
	var req TrendingRequest
	var err error
	if req.Limit, err = intParam(get, h.trendingLimit, "limit"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if req.Truncate, err = intParam(get, 0, "truncate"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	head := h.trending.Holder().Current().Head(req.Limit)
	products := make([]Product, len(head))
	for i, item := range head {
		products[i] = newProduct(item, req.Truncate)
	}
	rw.List(products, len(products))
}

// Suggest handles product name autocompletion
//
// @Summary Suggest product names
// @Description Returns product names starting with q (case-insensitive), in catalog order.
// @Tags Products
// @Produce json
// @Param q query string true "Name prefix"
// @Param limit query int false "Maximum suggestions (default 10)"
// @Success 200 {object} APIResponse{data=[]catalog.Suggestion}
// @Failure 400 {object} APIResponse
// @Router /products/suggest [get]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	get := r.URL.Query().Get
	req := SuggestRequest{Query: get("q")}
	var err error
	if req.Limit, err = intParam(get, 10, "limit"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	suggestions := h.products.Names().Complete(req.Query, req.Limit)
	rw.List(suggestions, len(suggestions))
}

// Product handles product lookup by exact name
//
// @Summary Get a product
// @Description Returns the first catalog row whose name matches exactly.
// @Tags Products
// @Produce json
// @Param name path string true "Exact product name"
// @Param truncate query int false "Truncate display_name to this many characters"
// @Success 200 {object} APIResponse{data=ProductDetail}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /products/{name} [get]
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	name, err := pathParam(r, "name")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := SimilarRequest{ItemName: name}
	if req.Truncate, err = intParam(r.URL.Query().Get, 0, "truncate"); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	cat := h.products.Holder().Current()
	pos, ok := cat.Lookup(req.ItemName)
	if !ok {
		rw.NotFound("Product not found")
		return
	}
	rw.Success(ProductDetail{
		Product:  newProduct(cat.Item(pos), req.Truncate),
		Position: pos,
	})
}
