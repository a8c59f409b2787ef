// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package middleware provides HTTP middleware for the Shelfmate API.

All middleware uses the func(http.Handler) http.Handler shape so it plugs
directly into chi's r.Use.

Key Components:

  - RequestID: request and correlation IDs for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by chi route pattern
  - Compression: gzip for clients that send Accept-Encoding: gzip
  - PerformanceMonitor: sliding window of latencies with p50/p95/p99 per route

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.Compression)

Inside a handler:

	logging.Ctx(r.Context()).Info().Msg("serving recommendations")
	id := middleware.GetRequestID(r.Context())
*/
package middleware
