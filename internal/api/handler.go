// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/middleware"
	"github.com/tomtom215/shelfmate/internal/recommend"
	"github.com/tomtom215/shelfmate/internal/websocket"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// BrandLister summarises a catalog by brand. DuckDBSource implements it.
type BrandLister interface {
	TopBrands(ctx context.Context, limit int) ([]catalog.BrandCount, error)
}

// Options configures a Handler.
type Options struct {
	// Engine serves recommendations over the products catalog. Required.
	Engine *recommend.Engine

	// Products reloads the products catalog. Required.
	Products *catalog.Reloader

	// Trending reloads the trending catalog. Nil disables trending.
	Trending *catalog.Reloader

	// TrendingLimit is the default trending page size.
	TrendingLimit int

	// RequestTimeout bounds each recommendation request.
	RequestTimeout time.Duration

	// Performance exposes per-route latency statistics. Optional.
	Performance *middleware.PerformanceMonitor

	// StoreEnabled is reported in health output.
	StoreEnabled bool

	// Events pushes catalog events over websockets. Nil disables /events.
	Events *websocket.Hub

	// AllowedOrigins lists websocket origins; "*" allows any.
	AllowedOrigins []string
}

// Handler serves the Shelfmate HTTP API.
type Handler struct {
	engine         *recommend.Engine
	products       *catalog.Reloader
	trending       *catalog.Reloader
	trendingLimit  int
	requestTimeout time.Duration
	perf           *middleware.PerformanceMonitor
	storeEnabled   bool
	events         *websocket.Hub
	allowedOrigins []string
	startTime      time.Time
}

// NewHandler validates opts and returns a Handler.
func NewHandler(opts Options) (*Handler, error) {
	if opts.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	if opts.Products == nil {
		return nil, errors.New("api: products reloader is required")
	}
	if opts.TrendingLimit <= 0 {
		opts.TrendingLimit = 8
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = opts.Engine.Config().Limits.RequestTimeout
	}
	return &Handler{
		engine:         opts.Engine,
		products:       opts.Products,
		trending:       opts.Trending,
		trendingLimit:  opts.TrendingLimit,
		requestTimeout: opts.RequestTimeout,
		perf:           opts.Performance,
		storeEnabled:   opts.StoreEnabled,
		events:         opts.Events,
		allowedOrigins: opts.AllowedOrigins,
		startTime:      time.Now(),
	}, nil
}
