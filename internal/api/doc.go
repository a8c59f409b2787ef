// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package api provides the HTTP interface of Shelfmate.

Routes are served by chi. Every response uses the same envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}, "meta": {...}}

# Endpoints

	GET  /api/v1/health                        service health
	GET  /api/v1/health/live                   liveness probe
	GET  /api/v1/health/ready                  readiness probe (503 without a valid catalog)
	GET  /api/v1/recommendations               ?item_name=&top_n=&truncate=
	POST /api/v1/recommendations               JSON or form body; prod and nbr accepted
	GET  /api/v1/recommendations/similar/{name}?k=
	GET  /api/v1/products/trending             ?limit=&truncate=
	GET  /api/v1/products/suggest              ?q=&limit=
	GET  /api/v1/products/{name}
	GET  /api/v1/catalog/status
	GET  /api/v1/catalog/brands                ?limit=
	POST /api/v1/catalog/reload
	GET  /api/v1/stats/performance
	GET  /api/v1/events                        websocket: catalog_swapped, ping/pong
	GET  /metrics                              Prometheus exposition
	GET  /swagger/*                            OpenAPI UI

An unknown product or an unusable catalog is not an error: recommendations
answer 200 with an empty items list, a reason and a message.

# Middleware

Global: request ID, real IP, panic recovery, CORS, Prometheus metrics,
latency tracking and gzip. Per group: httprate limits keyed by client IP
and security headers.
*/
package api
