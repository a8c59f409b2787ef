// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shelfmate/internal/metrics"
)

// BreakerConfig configures the circuit breaker in front of a remote catalog.
type BreakerConfig struct {
	// Name identifies the breaker in metrics.
	// Default: "catalog-remote"
	Name string

	// MaxRequests allowed through while half-open.
	// Default: 1
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts while closed.
	// Default: 60s
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	// Default: 30s
	Timeout time.Duration

	// FailureThreshold is the consecutive failure count that opens the breaker.
	// Default: 3
	FailureThreshold uint32
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "catalog-remote",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// maxRemoteCatalogBytes caps the downloaded body.
const maxRemoteCatalogBytes = 256 << 20

// HTTPSource downloads a CSV catalog over HTTP(S). Repeated failures open the
// circuit breaker, after which loads fail fast with gobreaker.ErrOpenState
// until the timeout elapses.
type HTTPSource struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*Catalog]
}

// NewHTTPSource returns a remote source. A nil client gets a 30s timeout client.
func NewHTTPSource(url string, cfg BreakerConfig, client *http.Client) *HTTPSource {
	defaults := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = defaults.MaxRequests
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), breakerStateValue(to))
		},
	}

	return &HTTPSource{
		url:     url,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[*Catalog](settings),
	}
}

func (s *HTTPSource) String() string {
	return s.url
}

// State returns the breaker state ("closed", "half-open", "open").
func (s *HTTPSource) State() string {
	return s.breaker.State().String()
}

// Load fetches and parses the remote CSV through the circuit breaker.
func (s *HTTPSource) Load(ctx context.Context) (*Catalog, error) {
	cat, err := s.breaker.Execute(func() (*Catalog, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch remote catalog: %w", err)
	}
	return cat, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return ParseCSV(io.LimitReader(resp.Body, maxRemoteCatalogBytes), WithSource(s.url))
}

func breakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
