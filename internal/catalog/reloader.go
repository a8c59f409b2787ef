// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmate/internal/metrics"
)

// Reload outcomes, also used as metric label values.
const (
	ReloadChanged   = "changed"
	ReloadUnchanged = "unchanged"
	ReloadFailed    = "failed"
)

// ReloadResult describes one reload attempt.
type ReloadResult struct {
	Catalog      string    `json:"catalog"`
	Outcome      string    `json:"outcome"`
	Items        int       `json:"items"`
	PreviousHash string    `json:"previous_hash,omitempty"`
	Hash         string    `json:"hash"`
	Error        string    `json:"error,omitempty"`
	At           time.Time `json:"at"`
}

// SwapFunc is notified after a reload replaced the served catalog.
type SwapFunc func(ctx context.Context, previous, current *Catalog)

// Reloader re-reads a Source into a Holder. A reload whose content hash
// matches the served catalog is a no-op, and a failed reload keeps serving
// the previous catalog. Reloads are serialised.
type Reloader struct {
	name   string
	source Source
	holder *Holder
	logger zerolog.Logger

	mu     sync.Mutex
	onSwap []SwapFunc
	names  *NameIndex
	last   ReloadResult
}

// NewReloader creates a reloader for the named catalog ("products",
// "trending"). The holder's current catalog is treated as already loaded.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewReloader(name string, source Source, holder *Holder, logger zerolog.Logger) *Reloader {
	current := holder.Current()
	metrics.SetCatalogItems(name, current.Len())
	return &Reloader{
		name:   name,
		source: source,
		holder: holder,
		logger: logger.With().Str("component", "catalog-reloader").Str("catalog", name).Logger(),
		names:  NewNameIndex(current),
		last: ReloadResult{
			Catalog: name,
			Outcome: ReloadChanged,
			Items:   current.Len(),
			Hash:    current.Hash(),
			At:      current.LoadedAt(),
		},
	}
}

// Name returns the catalog name.
func (r *Reloader) Name() string {
	return r.name
}

// Source returns the underlying source.
func (r *Reloader) Source() Source {
	return r.source
}

// Holder returns the holder being reloaded.
func (r *Reloader) Holder() *Holder {
	return r.holder
}

// OnSwap registers fn to run after every catalog replacement.
func (r *Reloader) OnSwap(fn SwapFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSwap = append(r.onSwap, fn)
}

// Names returns the prefix index over the served catalog's names.
func (r *Reloader) Names() *NameIndex {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names
}

// LastResult returns the outcome of the most recent reload.
func (r *Reloader) LastResult() ReloadResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Reload loads the source and swaps it in when its content changed.
// The returned error is the load error, if any; the served catalog is
// left untouched in that case.
func (r *Reloader) Reload(ctx context.Context) (ReloadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	previous := r.holder.Current()
	result := ReloadResult{
		Catalog:      r.name,
		PreviousHash: previous.Hash(),
		At:           start,
	}

	next, err := r.source.Load(ctx)
	metrics.RecordCatalogLoad(sourceKind(r.source), time.Since(start), err)
	if err != nil {
		result.Outcome = ReloadFailed
		result.Items = previous.Len()
		result.Hash = previous.Hash()
		result.Error = err.Error()
		r.last = result
		metrics.RecordCatalogReload(ReloadFailed)
		r.logger.Warn().Err(err).Str("source", r.source.String()).Msg("catalog reload failed, keeping current catalog")
		return result, fmt.Errorf("reload %s catalog: %w", r.name, err)
	}

	result.Items = next.Len()
	result.Hash = next.Hash()

	if next.Hash() == previous.Hash() {
		result.Outcome = ReloadUnchanged
		r.last = result
		metrics.RecordCatalogReload(ReloadUnchanged)
		r.logger.Debug().Str("hash", next.Hash()).Msg("catalog unchanged")
		return result, nil
	}

	r.holder.Swap(next)
	r.names = NewNameIndex(next)
	result.Outcome = ReloadChanged
	r.last = result
	metrics.RecordCatalogReload(ReloadChanged)
	metrics.SetCatalogItems(r.name, next.Len())

	r.logger.Info().
		Str("previous_hash", previous.Hash()).
		Str("hash", next.Hash()).
		Int("items", next.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog replaced")

	for _, fn := range r.onSwap {
		fn(ctx, previous, next)
	}
	return result, nil
}
