// SPDX-License-Identifier: MIT
// Package: graphkey/catalog

package catalog

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/canon"
)

// ErrClosed is returned by Store operations after Close.
var ErrClosed = errors.New("catalog: store is closed")

// ErrBadStore indicates an incompatible or invalid store configuration.
var ErrBadStore = errors.New("catalog: bad store")

// Set is a deduplicating collection of canonical keys.
type Set interface {
	// TryAdd inserts k with label unless k is already present.
	// added reports whether k was new; the stored label never changes.
	TryAdd(k canon.Key, label string) (added bool, err error)

	// Lookup returns the label stored with k.
	Lookup(k canon.Key) (label string, ok bool, err error)

	// Count returns the number of distinct keys.
	Count() (int, error)
}

// AddGraph canonicalizes g and offers its key to s.
func AddGraph(s Set, g canon.Graph, label string, opts ...canon.Option) (canon.Key, bool, error) {
	k, err := canon.New(g, opts...)
	if err != nil {
		return canon.Key{}, false, errors.Wrapf(err, "catalog: %q", label)
	}
	added, err := s.TryAdd(k, label)
	return k, added, err
}
