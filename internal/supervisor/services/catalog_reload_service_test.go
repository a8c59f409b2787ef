// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shelfmate/internal/catalog"
)

// mockReloader counts reloads and optionally fails them.
type mockReloader struct {
	calls atomic.Int32
	err   error
}

func (m *mockReloader) Name() string { return "products" }

func (m *mockReloader) Reload(ctx context.Context) (catalog.ReloadResult, error) {
	m.calls.Add(1)
	if m.err != nil {
		return catalog.ReloadResult{Outcome: catalog.ReloadFailed}, m.err
	}
	return catalog.ReloadResult{Outcome: catalog.ReloadUnchanged}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCatalogReloadService_Interface(t *testing.T) {
	var _ suture.Service = (*CatalogReloadService)(nil)
}

func TestCatalogReloadService_Schedule(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{}
	svc := NewCatalogReloadService(reloader, CatalogReloadConfig{Interval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitFor(t, func() bool { return reloader.calls.Load() >= 2 })
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCatalogReloadService_Trigger(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{}
	svc := NewCatalogReloadService(reloader, CatalogReloadConfig{}, zerolog.Nop())

	// Pending triggers coalesce into one reload
	svc.Trigger()
	svc.Trigger()
	svc.Trigger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	waitFor(t, func() bool { return reloader.calls.Load() == 1 })
	time.Sleep(30 * time.Millisecond)
	if got := reloader.calls.Load(); got != 1 {
		t.Errorf("expected coalesced triggers to reload once, got %d", got)
	}

	svc.Trigger()
	waitFor(t, func() bool { return reloader.calls.Load() == 2 })
}

func TestCatalogReloadService_FailuresKeepRunning(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{err: errors.New("source unavailable")}
	svc := NewCatalogReloadService(reloader, CatalogReloadConfig{Interval: 5 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitFor(t, func() bool { return reloader.calls.Load() >= 3 })
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("failed reloads must not stop the service, got %v", err)
	}
}

func TestCatalogReloadService_String(t *testing.T) {
	t.Parallel()

	svc := NewCatalogReloadService(&mockReloader{}, CatalogReloadConfig{}, zerolog.Nop())
	if got := svc.String(); got != "catalog-reload-products" {
		t.Errorf("String() = %q", got)
	}
	if svc.config.Timeout != time.Minute {
		t.Errorf("expected default timeout 1m, got %v", svc.config.Timeout)
	}
}

func TestCatalogReloadService_MinTriggerInterval(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{}
	svc := NewCatalogReloadService(reloader, CatalogReloadConfig{MinTriggerInterval: 200 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	svc.Trigger()
	waitFor(t, func() bool { return reloader.calls.Load() == 1 })

	start := time.Now()
	svc.Trigger()
	waitFor(t, func() bool { return reloader.calls.Load() == 2 })
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("second triggered reload ran after %v, expected it to be spaced", elapsed)
	}
}

func TestCatalogReloadService_CancelDuringTriggerWait(t *testing.T) {
	t.Parallel()

	reloader := &mockReloader{}
	svc := NewCatalogReloadService(reloader, CatalogReloadConfig{MinTriggerInterval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	svc.Trigger()
	waitFor(t, func() bool { return reloader.calls.Load() == 1 })
	svc.Trigger()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return while waiting on the limiter")
	}
	if got := reloader.calls.Load(); got != 1 {
		t.Errorf("expected 1 reload, got %d", got)
	}
}
