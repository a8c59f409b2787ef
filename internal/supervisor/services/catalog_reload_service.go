// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/shelfmate/internal/catalog"
)

// CatalogReloader reloads one catalog. *catalog.Reloader satisfies it.
type CatalogReloader interface {
	Name() string
	Reload(ctx context.Context) (catalog.ReloadResult, error)
}

// CatalogReloadConfig configures a CatalogReloadService.
type CatalogReloadConfig struct {
	// Interval between scheduled reloads. Zero disables the schedule;
	// reloads then only happen through Trigger.
	Interval time.Duration

	// Timeout bounds a single reload.
	Timeout time.Duration

	// MinTriggerInterval spaces triggered reloads. A burst of file events
	// or manual requests results in at most one reload per interval.
	// Zero disables the limit.
	MinTriggerInterval time.Duration
}

// CatalogReloadService re-reads a catalog on a schedule and on demand.
// Reload failures are logged and never stop the service: the previous
// catalog keeps being served.
type CatalogReloadService struct {
	reloader CatalogReloader
	config   CatalogReloadConfig
	trigger  chan struct{}
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

// NewCatalogReloadService creates a reload service for reloader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogReloadService(reloader CatalogReloader, cfg CatalogReloadConfig, logger zerolog.Logger) *CatalogReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	limit := rate.Inf
	if cfg.MinTriggerInterval > 0 {
		limit = rate.Every(cfg.MinTriggerInterval)
	}
	return &CatalogReloadService{
		reloader: reloader,
		config:   cfg,
		trigger:  make(chan struct{}, 1),
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger.With().Str("service", "catalog-reload").Str("catalog", reloader.Name()).Logger(),
	}
}

// Trigger requests a reload. Requests made while one is pending coalesce.
func (s *CatalogReloadService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Serve implements suture.Service.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("catalog reload service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s.reload(ctx, "schedule")
		case <-s.trigger:
			// Triggers arriving during the wait coalesce into the next one
			if err := s.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("triggered reload skipped")
				continue
			}
			s.reload(ctx, "trigger")
		}
	}
}

func (s *CatalogReloadService) reload(ctx context.Context, cause string) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := s.reloader.Reload(reloadCtx)
	if err != nil {
		// Reloader already logged the failure with its source
		return
	}
	s.logger.Debug().
		Str("cause", cause).
		Str("outcome", result.Outcome).
		Int("items", result.Items).
		Msg("catalog reload finished")
}

// String implements fmt.Stringer for suture's logs.
func (s *CatalogReloadService) String() string {
	return "catalog-reload-" + s.reloader.Name()
}
