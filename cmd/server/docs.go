// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package main provides the Shelfmate HTTP server
//
// @title Shelfmate API
// @version 1.0
// @description Content-based product recommendations over a product catalog's tag text.
// @description
// @description ## Recommendations
// @description
// @description Items are ranked by TF-IDF cosine similarity of their tags to the named product.
// @description An unknown product or an unusable catalog returns 200 with an empty list and a reason.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Health probes allow 1000 per minute, catalog reloads 6 per minute.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "VALIDATION_ERROR",
// @description     "message": "Human-readable error message",
// @description     "details": {},
// @description     "request_id": "..."
// @description   },
// @description   "meta": {
// @description     "request_id": "...",
// @description     "timestamp": "2026-01-01T12:34:56Z",
// @description     "duration_ms": 1
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/shelfmate/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Health
// @tag.description Liveness, readiness and service health
//
// @tag.name Recommendations
// @tag.description Similar-product recommendations
//
// @tag.name Products
// @tag.description Trending products, name suggestions and product lookup
//
// @tag.name Catalog
// @tag.description Catalog status, reloads and brand summaries
//
// @tag.name Stats
// @tag.description Request performance statistics
package main
