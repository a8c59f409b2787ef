// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import (
	"sort"
	"strings"
)

// Suggestion is a product name matching a prefix.
type Suggestion struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type trieNode struct {
	children map[rune]*trieNode
	// names ending here; several when names differ only by case
	entries []Suggestion
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// NameIndex is a case-insensitive prefix tree over product names. Queries
// must match names exactly when asking for recommendations, so the index
// lets callers discover the exact spelling first.
//
// A NameIndex is built once and never mutated, so reads need no locking.
type NameIndex struct {
	root *trieNode
	size int
}

// NewNameIndex indexes the first occurrence of every distinct name.
func NewNameIndex(c *Catalog) *NameIndex {
	idx := &NameIndex{root: newTrieNode()}
	for i := 0; i < c.Len(); i++ {
		name := c.Item(i).Name
		if name == "" {
			continue
		}
		if first, _ := c.Lookup(name); first != i {
			continue
		}
		idx.insert(name, i)
	}
	return idx
}

func (idx *NameIndex) insert(name string, position int) {
	node := idx.root
	for _, ch := range strings.ToLower(name) {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}
	node.entries = append(node.entries, Suggestion{Name: name, Position: position})
	idx.size++
}

// Len returns the number of indexed names.
func (idx *NameIndex) Len() int {
	return idx.size
}

// Complete returns up to limit names starting with prefix (case-insensitive),
// in catalog order.
func (idx *NameIndex) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		limit = 10
	}

	node := idx.root
	for _, ch := range strings.ToLower(prefix) {
		node = node.children[ch]
		if node == nil {
			return []Suggestion{}
		}
	}

	results := make([]Suggestion, 0, limit)
	collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func collect(node *trieNode, results *[]Suggestion) {
	*results = append(*results, node.entries...)
	for _, child := range node.children {
		collect(child, results)
	}
}
