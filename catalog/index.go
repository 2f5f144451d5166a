// SPDX-License-Identifier: MIT
// Package: graphkey/catalog

package catalog

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/katalvlaran/graphkey/canon"
)

// Index is an in-memory Set ordered by Key.Compare. Safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	tree *redblacktree.Tree
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return a.(canon.Key).Compare(b.(canon.Key))
		}),
	}
}

// Add inserts k unless present and reports whether it was new.
func (ix *Index) Add(k canon.Key, label string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, found := ix.tree.Get(k); found {
		return false
	}
	ix.tree.Put(k, label)
	return true
}

// TryAdd implements Set; it never fails.
func (ix *Index) TryAdd(k canon.Key, label string) (bool, error) {
	return ix.Add(k, label), nil
}

// Lookup implements Set.
func (ix *Index) Lookup(k canon.Key) (string, bool, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	v, found := ix.tree.Get(k)
	if !found {
		return "", false, nil
	}
	return v.(string), true, nil
}

// Count implements Set.
func (ix *Index) Count() (int, error) {
	return ix.Len(), nil
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tree.Size()
}

// Keys returns all keys in ascending canonical order.
func (ix *Index) Keys() []canon.Key {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]canon.Key, 0, ix.tree.Size())
	for _, k := range ix.tree.Keys() {
		out = append(out, k.(canon.Key))
	}
	return out
}

// Each visits entries in ascending key order until fn returns false.
// fn must not call back into ix.
func (ix *Index) Each(fn func(k canon.Key, label string) bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	it := ix.tree.Iterator()
	for it.Next() {
		if !fn(it.Key().(canon.Key), it.Value().(string)) {
			return
		}
	}
}
