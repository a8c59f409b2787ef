// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/websocket"
)

// withEvents attaches a running hub to ts and returns the events URL.
func withEvents(t *testing.T, ts *testServer, origins []string) (*websocket.Hub, string) {
	t.Helper()

	hub := websocket.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.Serve(ctx) }()

	ts.handler.events = hub
	ts.handler.allowedOrigins = origins
	ts.handler.products.OnSwap(func(_ context.Context, _, current *catalog.Catalog) {
		hub.BroadcastCatalogSwapped("products", current)
	})

	srv := httptest.NewServer(ts.router)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events"
}

func TestEvents_Disabled(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, false)
	w := ts.do(t, http.MethodGet, "/api/v1/events", nil, "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if resp := envelope(t, w, nil); resp.Error == nil || resp.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %+v", resp.Error)
	}
}

func TestEvents_CatalogSwapped(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, false)
	hub, url := withEvents(t, ts, []string{"*"})

	conn, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	updated := catalog.New([]catalog.Item{
		{Name: "Red Running Shoe", Tags: "red shoe running"},
		{Name: "Green Scarf", Tags: "green scarf wool"},
	})
	ts.products.set(updated, nil)
	if _, err := ts.handler.products.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	var msg struct {
		Type string                       `json:"type"`
		Data websocket.CatalogSwappedData `json:"data"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Type != websocket.MessageTypeCatalogSwapped {
		t.Errorf("expected catalog_swapped, got %s", msg.Type)
	}
	if msg.Data.Hash != updated.Hash() || msg.Data.Items != 2 {
		t.Errorf("unexpected payload %+v", msg.Data)
	}
}

func TestEvents_OriginCheck(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, false)
	_, url := withEvents(t, ts, []string{"https://shop.example.com"})

	tests := []struct {
		name   string
		origin string
		wantOK bool
	}{
		{name: "no origin", wantOK: true},
		{name: "allowed origin", origin: "https://shop.example.com", wantOK: true},
		{name: "foreign origin", origin: "https://evil.example.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := gorillaws.DefaultDialer.Dial(url, header)
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			if tt.wantOK {
				if err != nil {
					t.Fatalf("dial failed: %v", err)
				}
				_ = conn.Close()
				return
			}
			if err == nil {
				_ = conn.Close()
				t.Fatal("expected handshake to be rejected")
			}
			if resp == nil || resp.StatusCode != http.StatusForbidden {
				t.Errorf("expected 403, got %+v", resp)
			}
		})
	}
}

func TestSanitizeOrigin(t *testing.T) {
	t.Parallel()

	if got := sanitizeOrigin("https://a.example\r\nX-Injected: 1"); got != "https://a.exampleX-Injected: 1" {
		t.Errorf("sanitizeOrigin = %q", got)
	}
}
