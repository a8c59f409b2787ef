// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	Uptime       float64 `json:"uptime_seconds"`
	CatalogItems int     `json:"catalog_items"`
	CatalogHash  string  `json:"catalog_hash"`
	CatalogError string  `json:"catalog_error,omitempty"`
	IndexReady   bool    `json:"index_ready"`
	Trending     bool    `json:"trending_enabled"`
	StoreEnabled bool    `json:"store_enabled"`
}

func (h *Handler) healthStatus() HealthStatus {
	cat := h.products.Holder().Current()
	_, indexReady := h.engine.CurrentIndex()

	status := HealthStatus{
		Status:       "healthy",
		Version:      Version,
		Uptime:       time.Since(h.startTime).Seconds(),
		CatalogItems: cat.Len(),
		CatalogHash:  cat.Hash(),
		IndexReady:   indexReady,
		Trending:     h.trending != nil,
		StoreEnabled: h.storeEnabled,
	}
	if err := cat.Validate(); err != nil {
		status.Status = "degraded"
		status.CatalogError = err.Error()
	}
	return status
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Returns catalog size and hash, index readiness and uptime. Degraded when the products catalog is empty or invalid.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus())
}

// HealthLive handles liveness probe requests
//
// @Summary Liveness probe
// @Description Returns 200 while the process is running.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests
//
// @Summary Readiness probe
// @Description Returns 200 when the products catalog is valid, 503 otherwise.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Failure 503 {object} APIResponse{data=HealthStatus}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.healthStatus()
	code := http.StatusOK
	if status.CatalogError != "" {
		code = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).Status(code, status)
}
