// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmate/internal/catalog"
	"github.com/tomtom215/shelfmate/internal/supervisor/services"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
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

func TestNewSupervisorTree_Defaults(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor should not be nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("expected defaults, got %+v", tree.config)
	}

	tree, _ = NewSupervisorTree(quietLogger(), TreeConfig{FailureThreshold: 2, ShutdownTimeout: time.Second})
	if tree.config.FailureThreshold != 2 || tree.config.ShutdownTimeout != time.Second {
		t.Errorf("explicit values must be kept, got %+v", tree.config)
	}
}

func TestSupervisorTree_StartsEveryLayer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		add  func(*SupervisorTree, *mockService)
	}{
		{name: "catalog", add: func(tr *SupervisorTree, s *mockService) { tr.AddCatalogService(s) }},
		{name: "data", add: func(tr *SupervisorTree, s *mockService) { tr.AddDataService(s) }},
		{name: "api", add: func(tr *SupervisorTree, s *mockService) { tr.AddAPIService(s) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
			svc := newMockService(tt.name + "-service")
			tt.add(tree, svc)

			ctx, cancel := context.WithCancel(context.Background())
			errCh := tree.ServeBackground(ctx)

			waitFor(t, func() bool { return svc.starts() >= 1 })
			cancel()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, context.Canceled) {
					t.Errorf("unexpected error: %v", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("tree did not shut down in time")
			}
			if svc.stops() < 1 {
				t.Error("service was not stopped")
			}
		})
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	t.Parallel()

	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := newMockService("failing")
	failing.setFailCount(2)
	stable := newMockService("stable")

	tree.AddCatalogService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tree.ServeBackground(ctx)

	waitFor(t, func() bool { return failing.starts() >= 3 })
	if stable.starts() != 1 {
		t.Errorf("a failing catalog service must not restart the api layer, got %d starts", stable.starts())
	}
}

func TestSupervisorTree_RemoveCatalogService(t *testing.T) {
	t.Parallel()

	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	svc := newMockService("watch")
	token := tree.AddCatalogService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tree.ServeBackground(ctx)

	waitFor(t, func() bool { return svc.starts() >= 1 })
	if err := tree.RemoveCatalogService(token); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	waitFor(t, func() bool { return svc.stops() >= 1 })
}

type countingSource struct {
	loads atomic.Int32
}

func (s *countingSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	s.loads.Add(1)
	return catalog.New([]catalog.Item{{Name: "A", Tags: "red shoe"}}), nil
}

func (s *countingSource) String() string { return "counting" }

func TestSupervisorTree_CatalogReloadWiring(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	holder := catalog.NewHolder(catalog.Empty())
	reloader := catalog.NewReloader("products", src, holder, zerolog.Nop())
	reload := services.NewCatalogReloadService(reloader, services.CatalogReloadConfig{}, zerolog.Nop())

	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	tree.AddCatalogService(reload)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tree.ServeBackground(ctx)

	reload.Trigger()
	waitFor(t, func() bool { return holder.Current().Len() == 1 })
	if src.loads.Load() != 1 {
		t.Errorf("expected one load, got %d", src.loads.Load())
	}
}
