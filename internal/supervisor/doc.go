// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

/*
Package supervisor provides process supervision for Shelfmate using suture v4.

Long-running components run as suture services in a three-layer tree:

	RootSupervisor ("shelfmate")
	├── CatalogSupervisor ("catalog-layer")
	│   ├── CatalogReloadService (products)
	│   ├── CatalogReloadService (trending, if configured)
	│   └── FileWatchService (if catalog.watch_file and a CSV source)
	├── DataSupervisor ("data-layer")
	│   ├── websocket.Hub
	│   └── StoreGCService (if store.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently, so a reload loop that keeps
failing backs off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCatalogService(services.NewCatalogReloadService(reloader, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Failure Handling

Suture keeps a failure counter per supervisor that decays over FailureDecay
seconds. Past FailureThreshold the supervisor waits FailureBackoff before
the next restart. Services return ctx.Err() when asked to stop; any other
error is a crash.

Supervisor events are logged through sutureslog to the slog bridge of the
application's zerolog logger.

# Debugging Shutdown Issues

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logger.Warn().Str("service", svc.Name).Msg("service did not stop")
	}

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4: underlying library
*/
package supervisor
