// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import "sync/atomic"

// Provider supplies the catalog to serve. Implementations must return an
// immutable value; callers may hold it for the duration of a request.
type Provider interface {
	Current() *Catalog
}

// Holder is a Provider whose catalog can be replaced atomically.
type Holder struct {
	current atomic.Pointer[Catalog]
	swaps   atomic.Int64
}

// NewHolder returns a Holder serving initial (an empty catalog when nil).
func NewHolder(initial *Catalog) *Holder {
	if initial == nil {
		initial = Empty()
	}
	h := &Holder{}
	h.current.Store(initial)
	return h
}

// Current returns the catalog being served.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap replaces the served catalog and returns the previous one.
func (h *Holder) Swap(next *Catalog) *Catalog {
	if next == nil {
		next = Empty()
	}
	h.swaps.Add(1)
	return h.current.Swap(next)
}

// Swaps returns how many times the catalog has been replaced.
func (h *Holder) Swaps() int64 {
	return h.swaps.Load()
}

// Static is a Provider over a fixed catalog, handy for tests and one-shot tools.
type Static struct {
	Catalog *Catalog
}

// Current returns the fixed catalog.
func (s Static) Current() *Catalog {
	return s.Catalog
}
