// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package websocket pushes catalog events to connected clients.
//
// A Hub tracks connected clients and fans broadcast messages out to them.
// It runs as a suture service in the data layer of the supervisor tree;
// when its context is canceled every client is closed.
//
// # Message Types
//
//   - catalog_swapped: a catalog was replaced; carries the catalog name,
//     content hash and item count so clients can refetch recommendations
//   - ping / pong: application-level keepalive initiated by the client
//
// # Usage
//
//	hub := websocket.NewHub(logger)
//	tree.AddDataService(hub)
//	products.OnSwap(func(_ context.Context, _, current *catalog.Catalog) {
//	    hub.BroadcastCatalogSwapped("products", current)
//	})
//
// The HTTP side upgrades /api/v1/events and hands the connection to
// NewClient, which registers itself with the hub.
package websocket
