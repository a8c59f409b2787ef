// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/shelfmate/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Returns catalog size and hash, index readiness and uptime. Degraded when the products catalog is empty or invalid.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Get service health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "description": "Returns 200 while the process is running.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Returns 200 when the products catalog is valid, 503 otherwise.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/recommendations": {
            "get": {
                "description": "Returns up to top_n products whose tags are most similar to the named product, most similar first.\nAn unknown product or an unusable catalog yields 200 with an empty list, a reason and a message.\nprod and nbr are accepted as aliases of item_name and top_n.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Recommend similar products",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact product name",
                        "name": "item_name",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Number of recommendations (default 10)",
                        "name": "top_n",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Truncate display_name to this many characters",
                        "name": "truncate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.RecommendationsData"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "504": {
                        "description": "Gateway Timeout",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "JSON or form body form of GET /recommendations.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Recommend similar products",
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Recommendation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.RecommendationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.RecommendationsData"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "504": {
                        "description": "Gateway Timeout",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/recommendations/similar/{name}": {
            "get": {
                "description": "Path form of /recommendations. The product name is URL-escaped in the path.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Products similar to a product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact product name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Number of recommendations (default 10)",
                        "name": "k",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Truncate display_name to this many characters",
                        "name": "truncate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.RecommendationsData"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/products/trending": {
            "get": {
                "description": "Returns the first limit rows of the trending catalog in file order.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "List trending products",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Number of products (default 8)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Truncate display_name to this many characters",
                        "name": "truncate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/api.Product"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/products/suggest": {
            "get": {
                "description": "Returns product names starting with q (case-insensitive), in catalog order.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Suggest product names",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Name prefix",
                        "name": "q",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum suggestions (default 10)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/catalog.Suggestion"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/products/{name}": {
            "get": {
                "description": "Returns the first catalog row whose name matches exactly.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Products"
                ],
                "summary": "Get a product",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact product name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Truncate display_name to this many characters",
                        "name": "truncate",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.ProductDetail"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/catalog/status": {
            "get": {
                "description": "Returns source, size, content hash and last reload of each catalog, plus index and engine counters.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Get catalog status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.CatalogStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/catalog/reload": {
            "post": {
                "description": "Re-reads the products and trending sources. Unchanged content is a no-op; a failed reload keeps serving the previous catalog.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Reload catalogs",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.ReloadStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/catalog/brands": {
            "get": {
                "description": "Returns brands ordered by item count. Computed in DuckDB when the catalog is backed by it, in memory otherwise.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "List top brands",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum brands (default 20)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/catalog.BrandCount"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/events": {
            "get": {
                "description": "Upgrades to a websocket. The server sends catalog_swapped whenever a catalog is replaced; clients may send ping and receive pong.",
                "tags": [
                    "Events"
                ],
                "summary": "Subscribe to catalog events",
                "responses": {
                    "101": {
                        "description": "Switching Protocols",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "Origin not allowed",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "Events disabled",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/stats/performance": {
            "get": {
                "description": "Returns per-route request counts, error counts and latency percentiles over the recent request window.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Stats"
                ],
                "summary": "Get request performance statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/middleware.EndpointStats"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {},
                "request_id": {
                    "type": "string"
                }
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {},
                "error": {
                    "$ref": "#/definitions/api.APIError"
                },
                "meta": {
                    "$ref": "#/definitions/api.APIMeta"
                }
            }
        },
        "api.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "uptime_seconds": {
                    "type": "number"
                },
                "catalog_items": {
                    "type": "integer"
                },
                "catalog_hash": {
                    "type": "string"
                },
                "catalog_error": {
                    "type": "string"
                },
                "index_ready": {
                    "type": "boolean"
                },
                "trending_enabled": {
                    "type": "boolean"
                },
                "store_enabled": {
                    "type": "boolean"
                }
            }
        },
        "api.RecommendationRequest": {
            "type": "object",
            "required": [
                "item_name"
            ],
            "properties": {
                "item_name": {
                    "type": "string",
                    "maxLength": 512
                },
                "top_n": {
                    "type": "integer",
                    "minimum": 0,
                    "maximum": 1000
                },
                "truncate": {
                    "type": "integer",
                    "minimum": 0,
                    "maximum": 1000
                }
            }
        },
        "api.Product": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "brand": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                },
                "rating": {
                    "type": "number"
                },
                "review_count": {
                    "type": "number"
                },
                "tags": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                }
            }
        },
        "api.ProductDetail": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "brand": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                },
                "rating": {
                    "type": "number"
                },
                "review_count": {
                    "type": "number"
                },
                "tags": {
                    "type": "string"
                },
                "position": {
                    "type": "integer"
                }
            }
        },
        "api.RecommendationsData": {
            "type": "object",
            "properties": {
                "query": {
                    "type": "string"
                },
                "top_n": {
                    "type": "integer"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/api.Product"
                    }
                },
                "reason": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "catalog_hash": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "cache_hit": {
                    "type": "boolean"
                }
            }
        },
        "api.CatalogInfo": {
            "type": "object",
            "properties": {
                "source": {
                    "type": "string"
                },
                "items": {
                    "type": "integer"
                },
                "hash": {
                    "type": "string"
                },
                "loaded_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "valid": {
                    "type": "boolean"
                },
                "last_reload": {
                    "$ref": "#/definitions/catalog.ReloadResult"
                }
            }
        },
        "api.CatalogStatus": {
            "type": "object",
            "properties": {
                "products": {
                    "$ref": "#/definitions/api.CatalogInfo"
                },
                "trending": {
                    "$ref": "#/definitions/api.CatalogInfo"
                },
                "index": {
                    "$ref": "#/definitions/recommend.IndexInfo"
                },
                "engine": {
                    "$ref": "#/definitions/recommend.Stats"
                }
            }
        },
        "api.ReloadStatus": {
            "type": "object",
            "properties": {
                "products": {
                    "$ref": "#/definitions/catalog.ReloadResult"
                },
                "trending": {
                    "$ref": "#/definitions/catalog.ReloadResult"
                }
            }
        },
        "catalog.BrandCount": {
            "type": "object",
            "properties": {
                "brand": {
                    "type": "string"
                },
                "items": {
                    "type": "integer"
                }
            }
        },
        "catalog.ReloadResult": {
            "type": "object",
            "properties": {
                "catalog": {
                    "type": "string"
                },
                "outcome": {
                    "type": "string"
                },
                "items": {
                    "type": "integer"
                },
                "previous_hash": {
                    "type": "string"
                },
                "hash": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "catalog.Suggestion": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "position": {
                    "type": "integer"
                }
            }
        },
        "middleware.EndpointStats": {
            "type": "object",
            "properties": {
                "endpoint": {
                    "type": "string"
                },
                "request_count": {
                    "type": "integer"
                },
                "error_count": {
                    "type": "integer"
                },
                "avg_duration_ms": {
                    "type": "number"
                },
                "p50_ms": {
                    "type": "integer"
                },
                "p95_ms": {
                    "type": "integer"
                },
                "p99_ms": {
                    "type": "integer"
                },
                "min_ms": {
                    "type": "integer"
                },
                "max_ms": {
                    "type": "integer"
                }
            }
        },
        "recommend.IndexInfo": {
            "type": "object",
            "properties": {
                "catalog_hash": {
                    "type": "string"
                },
                "items": {
                    "type": "integer"
                },
                "dimensions": {
                    "type": "integer"
                },
                "built_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "build_duration_ns": {
                    "type": "integer"
                }
            }
        },
        "recommend.Stats": {
            "type": "object",
            "properties": {
                "requests": {
                    "type": "integer"
                },
                "degraded": {
                    "type": "integer"
                },
                "cache_hits": {
                    "type": "integer"
                },
                "cache_misses": {
                    "type": "integer"
                },
                "store_hits": {
                    "type": "integer"
                },
                "index_builds": {
                    "type": "integer"
                },
                "index_failures": {
                    "type": "integer"
                },
                "index_cache_size": {
                    "type": "integer"
                },
                "response_cache_size": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Shelfmate API",
	Description:      "Content-based product recommendations over a product catalog's tag text.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
