// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmate/internal/catalog"
)

// Message types
const (
	MessageTypeCatalogSwapped = "catalog_swapped"
	MessageTypePing           = "ping"
	MessageTypePong           = "pong"
)

// Message is one websocket frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// CatalogSwappedData is sent with catalog_swapped.
type CatalogSwappedData struct {
	Catalog   string `json:"catalog"`
	Hash      string `json:"hash"`
	Items     int    `json:"items"`
	Valid     bool   `json:"valid"`
	Timestamp string `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients   map[*Client]struct{}
	broadcast chan Message
	register  chan *Client
	leave     chan *Client
	mu        sync.RWMutex
	logger    zerolog.Logger
}

// NewHub creates a Hub. It does nothing until Serve runs.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan Message, 64),
		register:  make(chan *Client),
		leave:     make(chan *Client),
		logger:    logger.With().Str("component", "websocket-hub").Logger(),
	}
}

// Register adds c to the hub. It blocks until the hub accepts the client or
// ctx ends.
func (h *Hub) Register(ctx context.Context, c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.leave <- c:
	case <-c.done:
		// already dropped by the hub
	case <-time.After(writeWait):
	}
}

// Serve implements suture.Service. Lifecycle events are handled before
// broadcasts so client state is settled when a message fans out.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return ctx.Err()
		case c := <-h.register:
			h.add(c)
			continue
		case c := <-h.leave:
			h.remove(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown()
			return ctx.Err()
		case c := <-h.register:
			h.add(c)
		case c := <-h.leave:
			h.remove(c)
		case msg := <-h.broadcast:
			h.broadcastToClients(msg)
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info().Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info().Int("total_clients", n).Msg("websocket client disconnected")
}

// sortedClients returns clients in ID order. Caller holds mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients drops any client whose send buffer is full.
func (h *Hub) broadcastToClients(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.sortedClients() {
		select {
		case c.send <- msg:
		default:
			c.close()
			delete(h.clients, c)
			h.logger.Warn().Uint64("client", c.id).Msg("dropping slow websocket client")
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	clients := h.sortedClients()
	for _, c := range clients {
		c.close()
		delete(h.clients, c)
	}
	h.mu.Unlock()
	h.logger.Info().Int("clients_closed", len(clients)).Msg("websocket hub stopped")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues msg for every client. It never blocks; when the queue
// is full the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("message_type", msg.Type).Msg("broadcast channel full, dropping message")
	}
}

// BroadcastCatalogSwapped announces that name now serves cat.
func (h *Hub) BroadcastCatalogSwapped(name string, cat *catalog.Catalog) {
	h.Broadcast(Message{
		Type: MessageTypeCatalogSwapped,
		Data: CatalogSwappedData{
			Catalog:   name,
			Hash:      cat.Hash(),
			Items:     cat.Len(),
			Valid:     cat.Validate() == nil,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}
