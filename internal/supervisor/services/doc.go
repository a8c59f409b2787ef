// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package services provides suture.Service wrappers for Shelfmate components.

Each wrapper implements suture's Serve(ctx) error and fmt.Stringer:

  - HTTPServerService runs the API server and drains it on shutdown.
  - CatalogReloadService reloads a catalog on an interval and on Trigger.
  - FileWatchService triggers reloads when a CSV catalog changes on disk.
  - StoreGCService runs Badger value-log GC for the result store.

Services return ctx.Err() on a requested stop. Any other returned error
makes the supervisor restart the service with backoff.
*/
package services
