// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Command server runs the Shelfmate recommendation API.

Startup order:

 1. Configuration: koanf v2 layering defaults, an optional YAML file and
    environment variables
 2. Logging: zerolog in JSON or console format
 3. Catalogs: products from CSV, DuckDB or HTTP; trending from CSV. A source
    that fails to load yields an empty catalog and the service still starts.
 4. Engine: TF-IDF index per catalog content hash, response cache and the
    optional Badger result store
 5. HTTP: chi router with rate limiting, CORS, metrics and Swagger UI
 6. Supervision: suture tree running reload loops, file watches, store GC
    and the HTTP server

# Configuration

The config file is read from CONFIG_PATH, ./config.yaml or
/etc/shelfmate/config.yaml. Common environment overrides:

	HTTP_PORT=5000
	LOG_LEVEL=info
	CATALOG_SOURCE=csv            # csv, duckdb or http
	CATALOG_PATH=models/clean_data.csv
	CATALOG_URL=https://example.com/catalog.csv
	TRENDING_PATH=models/trending_products.csv
	CATALOG_RELOAD_INTERVAL=5m
	STORE_ENABLED=true
	STORE_PATH=/data/results
	CORS_ORIGINS=https://shop.example.com

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for server.shutdown_timeout before exiting.

# Example

	CATALOG_PATH=./clean_data.csv ./shelfmate
	curl 'localhost:5000/api/v1/recommendations?item_name=OPI+Nail+Lacquer&top_n=5'
*/
package main
