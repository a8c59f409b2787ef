// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Source column names.
const (
	ColumnName        = "Name"
	ColumnTags        = "Tags"
	ColumnReviewCount = "ReviewCount"
	ColumnBrand       = "Brand"
	ColumnImageURL    = "ImageURL"
	ColumnRating      = "Rating"
)

// RequiredColumns must be present for a catalog to be usable.
var RequiredColumns = []string{ColumnName, ColumnTags}

// KnownColumns lists every column the loader maps onto Item, in canonical order.
var KnownColumns = []string{ColumnName, ColumnTags, ColumnReviewCount, ColumnBrand, ColumnImageURL, ColumnRating}

var (
	// ErrEmpty is returned by Validate for a catalog with no items.
	ErrEmpty = errors.New("catalog is empty")

	// ErrMissingColumn is returned by Validate when Name or Tags is absent.
	ErrMissingColumn = errors.New("catalog is missing a required column")
)

// Item is one product row. Items are immutable once loaded.
type Item struct {
	Name        string  `json:"name"`
	Tags        string  `json:"tags,omitempty"`
	ReviewCount float64 `json:"review_count"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
}

// Catalog is an ordered, read-only sequence of items with a name lookup that
// resolves to the first row carrying that name.
type Catalog struct {
	items    []Item
	index    map[string]int
	columns  map[string]bool
	order    []string
	hash     string
	source   string
	loadedAt time.Time
}

// Option configures a Catalog built with New.
type Option func(*Catalog)

// WithColumns records the columns present in the source. Without it every
// known column is assumed present.
func WithColumns(columns []string) Option {
	return func(c *Catalog) {
		c.columns = make(map[string]bool, len(columns))
		c.order = append([]string(nil), columns...)
		for _, col := range columns {
			c.columns[col] = true
		}
	}
}

// WithSource names where the catalog came from (file path, URL).
func WithSource(source string) Option {
	return func(c *Catalog) { c.source = source }
}

// WithLoadedAt sets the load timestamp. Defaults to time.Now().
func WithLoadedAt(t time.Time) Option {
	return func(c *Catalog) { c.loadedAt = t }
}

// New builds a catalog over a private copy of items.
func New(items []Item, opts ...Option) *Catalog {
	c := &Catalog{
		items:    append([]Item(nil), items...),
		index:    make(map[string]int, len(items)),
		loadedAt: time.Now(),
	}
	WithColumns(KnownColumns)(c)
	for _, opt := range opts {
		opt(c)
	}

	for i, item := range c.items {
		if _, seen := c.index[item.Name]; !seen {
			c.index[item.Name] = i
		}
	}
	c.hash = c.computeHash()
	return c
}

// Empty returns a catalog with no items and no columns.
func Empty(opts ...Option) *Catalog {
	return New(nil, append([]Option{WithColumns(nil)}, opts...)...)
}

// Len returns the number of items. Nil-safe.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Item returns the item at row i.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	return append([]Item(nil), c.items...)
}

// Head returns a copy of the first n items (all when n exceeds the size).
func (c *Catalog) Head(n int) []Item {
	if c == nil || n <= 0 {
		return []Item{}
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	return append([]Item(nil), c.items[:n]...)
}

// Lookup returns the row index of the first item named name.
func (c *Catalog) Lookup(name string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[name]
	return i, ok
}

// HasColumn reports whether the source carried the named column.
func (c *Catalog) HasColumn(column string) bool {
	return c != nil && c.columns[column]
}

// Columns returns the source columns in source order.
func (c *Catalog) Columns() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Hash is a hex xxhash64 over columns and rows. Equal content gives an equal
// hash regardless of source or load time.
func (c *Catalog) Hash() string {
	if c == nil {
		return ""
	}
	return c.hash
}

// Source returns the source description given at load time.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// LoadedAt returns the load timestamp.
func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}

// Validate reports whether the catalog can back recommendations.
func (c *Catalog) Validate() error {
	if c.Len() == 0 {
		return ErrEmpty
	}
	for _, col := range RequiredColumns {
		if !c.columns[col] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

// Tags returns the tag text of every item in catalog order.
func (c *Catalog) Tags() []string {
	docs := make([]string, c.Len())
	for i := range docs {
		docs[i] = c.items[i].Tags
	}
	return docs
}

const (
	fieldSep  = 0x1f
	recordSep = 0x1e
)

func (c *Catalog) computeHash() string {
	d := xxhash.New()
	for _, col := range KnownColumns {
		if c.columns[col] {
			_, _ = d.WriteString(col)
		}
		_, _ = d.Write([]byte{fieldSep})
	}
	_, _ = d.Write([]byte{recordSep})

	buf := make([]byte, 0, 64)
	for _, item := range c.items {
		_, _ = d.WriteString(item.Name)
		_, _ = d.Write([]byte{fieldSep})
		_, _ = d.WriteString(item.Tags)
		_, _ = d.Write([]byte{fieldSep})
		buf = strconv.AppendUint(buf[:0], math.Float64bits(item.ReviewCount), 16)
		_, _ = d.Write(buf)
		_, _ = d.Write([]byte{fieldSep})
		_, _ = d.WriteString(item.Brand)
		_, _ = d.Write([]byte{fieldSep})
		_, _ = d.WriteString(item.ImageURL)
		_, _ = d.Write([]byte{fieldSep})
		buf = strconv.AppendUint(buf[:0], math.Float64bits(item.Rating), 16)
		_, _ = d.Write(buf)
		_, _ = d.Write([]byte{recordSep})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
