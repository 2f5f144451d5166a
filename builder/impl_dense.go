// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// impl_dense.go — Complete and CompleteBipartite constructors.
//
// Complexity: O(n²) and O(n1·n2) edges respectively.

package builder

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

// Complete builds K_n on idFn(0..n-1), emitting pairs (i,j) with i<j in
// lexicographic order.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinCompleteNodes {
			return tooFew(MethodComplete, n, MinCompleteNodes)
		}
		ids := cfg.ids(n)
		if err := addVertices(g, MethodComplete, ids); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := addEdge(g, MethodComplete, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// CompleteBipartite builds K_{n1,n2}. Sides are named with the partition
// prefixes ("L0..", "R0.." by default), independent of the ID scheme.
func CompleteBipartite(n1, n2 int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n1 < MinPartitionSize || n2 < MinPartitionSize {
			return errors.Wrapf(ErrTooFewVertices, "%s: partition sizes must be ≥ %d, got %d and %d",
				MethodCompleteBipartite, MinPartitionSize, n1, n2)
		}
		left := make([]string, n1)
		for i := range left {
			left[i] = cfg.leftPrefix + strconv.Itoa(i)
		}
		right := make([]string, n2)
		for i := range right {
			right[i] = cfg.rightPrefix + strconv.Itoa(i)
		}
		if err := addVertices(g, MethodCompleteBipartite, left); err != nil {
			return err
		}
		if err := addVertices(g, MethodCompleteBipartite, right); err != nil {
			return err
		}
		for _, u := range left {
			for _, v := range right {
				if err := addEdge(g, MethodCompleteBipartite, u, v); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
