// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/tomtom215/shelfmate/docs" // Import generated swagger docs
	"github.com/tomtom215/shelfmate/internal/api"
	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/config"
	"github.com/tomtom215/shelfmate/internal/logging"
	"github.com/tomtom215/shelfmate/internal/middleware"
	"github.com/tomtom215/shelfmate/internal/recommend"
	"github.com/tomtom215/shelfmate/internal/store"
	"github.com/tomtom215/shelfmate/internal/supervisor"
	"github.com/tomtom215/shelfmate/internal/supervisor/services"
	"github.com/tomtom215/shelfmate/internal/websocket"
)

// Performance monitor window and slow request threshold.
const (
	perfWindow        = 1000
	slowRequestCutoff = 500 * time.Millisecond
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingSettings())
	logger := logging.Logger()

	logger.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("catalog_source", cfg.Catalog.Source).
		Bool("store_enabled", cfg.Store.Enabled).
		Msg("Starting Shelfmate")

	if cfg.ShouldWarnAboutCORS() {
		logger.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === CATALOGS ===

	source, closeSource, err := buildProductSource(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build catalog source")
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Error().Err(err).Msg("Error closing catalog source")
		}
	}()

	// A missing or broken catalog starts the service empty rather than failing
	productsHolder := catalog.NewHolder(catalog.LoadOrEmpty(ctx, source, logger))
	products := catalog.NewReloader("products", source, productsHolder, logger)

	var trending *catalog.Reloader
	if cfg.Catalog.TrendingPath != "" {
		trendingSource := catalog.NewCSVFileSource(cfg.Catalog.TrendingPath)
		trendingHolder := catalog.NewHolder(catalog.LoadOrEmpty(ctx, trendingSource, logger))
		trending = catalog.NewReloader("trending", trendingSource, trendingHolder, logger)
	}

	// === RECOMMENDATION ENGINE ===

	engine, err := recommend.NewEngine(cfg.RecommendEngineConfig(), productsHolder, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	var resultStore *store.BadgerResultStore
	if cfg.Store.Enabled {
		resultStore, err = store.Open(store.Config{
			Path:       cfg.Store.Path,
			TTL:        cfg.Store.TTL,
			GCInterval: cfg.Store.GCInterval,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open result store")
		}
		defer func() {
			if err := resultStore.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing result store")
			}
		}()
		engine.SetResultStore(resultStore)
		logger.Info().Str("path", cfg.Store.Path).Msg("Result store opened")
	}

	hub := websocket.NewHub(logger)

	products.OnSwap(func(ctx context.Context, _, current *catalog.Catalog) {
		engine.OnCatalogChange(ctx, current.Hash())
		hub.BroadcastCatalogSwapped(products.Name(), current)
		if cfg.Recommend.WarmOnStartup {
			if err := engine.Warm(ctx); err != nil {
				logger.Warn().Err(err).Msg("Index warm-up after reload failed")
			}
		}
	})
	if trending != nil {
		trending.OnSwap(func(_ context.Context, _, current *catalog.Catalog) {
			hub.BroadcastCatalogSwapped(trending.Name(), current)
		})
	}

	// Drop stored results left over from a previous catalog
	engine.OnCatalogChange(ctx, productsHolder.Current().Hash())
	if cfg.Recommend.WarmOnStartup {
		if err := engine.Warm(ctx); err != nil {
			logger.Warn().Err(err).Msg("Index warm-up failed, recommendations will degrade until a valid catalog is loaded")
		}
	}

	// === HTTP API ===

	perf := middleware.NewPerformanceMonitor(perfWindow, slowRequestCutoff, logger)
	handler, err := api.NewHandler(api.Options{
		Engine:         engine,
		Products:       products,
		Trending:       trending,
		TrendingLimit:  cfg.Catalog.TrendingLimit,
		RequestTimeout: cfg.Recommend.RequestTimeout,
		Performance:    perf,
		StoreEnabled:   cfg.Store.Enabled,
		Events:         hub,
		AllowedOrigins: cfg.Security.CORSOrigins,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API handler")
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mwConfig).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	// sutureslog only accepts *slog.Logger; bridge it onto zerolog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	productsWatch := cfg.Catalog.Path
	if cfg.Catalog.Source == config.SourceHTTP {
		productsWatch = ""
	}
	addCatalogServices(tree, cfg, products, productsWatch, logger)
	if trending != nil {
		addCatalogServices(tree, cfg, trending, cfg.Catalog.TrendingPath, logger)
	}
	tree.AddDataService(hub)
	if resultStore != nil {
		tree.AddDataService(services.NewStoreGCService(resultStore, cfg.Store.GCInterval, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	// === START ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logger.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logger.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logger.Info().Msg("Application stopped gracefully")
}

// addCatalogServices supervises the reload loop of one catalog and, when
// catalog.watch_file is set, a watch on watchPath. An empty watchPath means
// the catalog has no local file.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func addCatalogServices(tree *supervisor.SupervisorTree, cfg *config.Config, reloader *catalog.Reloader, watchPath string, logger zerolog.Logger) {
	reload := services.NewCatalogReloadService(reloader, services.CatalogReloadConfig{
		Interval:           cfg.Catalog.ReloadInterval,
		Timeout:            cfg.Catalog.HTTPTimeout,
		MinTriggerInterval: cfg.Catalog.ReloadMinInterval,
	}, logger)
	tree.AddCatalogService(reload)

	if !cfg.Catalog.WatchFile || watchPath == "" {
		return
	}
	tree.AddCatalogService(services.NewFileWatchService(watchPath, config.WatchFile, reload.Trigger, logger))
}
