// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// adjacency.go — boundary validation and the engine's private graph copy.
//
// The caller's Graph is read exactly once, here. Everything downstream works
// on a compact CSR snapshot whose neighbor lists are sorted, so the search
// never calls back into caller code and never observes concurrent mutation.
//
// Rejected inputs (ErrInvalidGraph, wrapped with the offending node):
//   • negative order
//   • neighbor outside [0,n)
//   • self-loop (v ∈ N(v))
//   • parallel edge (w listed twice in N(v))
//   • asymmetric adjacency (w ∈ N(v) but v ∉ N(w))

package canon

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/soniakeys/bits"
)

// adjacency is a validated, immutable CSR copy of an undirected simple graph.
type adjacency struct {
	off []int // off[v]..off[v+1] indexes nbr
	nbr []int // concatenated sorted neighbor lists
}

func (a *adjacency) order() int { return len(a.off) - 1 }

func (a *adjacency) size() int { return len(a.nbr) / 2 }

func (a *adjacency) neighbors(v int) []int { return a.nbr[a.off[v]:a.off[v+1]] }

func (a *adjacency) degree(v int) int { return a.off[v+1] - a.off[v] }

// hasEdge reports u~v by binary search in u's sorted list.
func (a *adjacency) hasEdge(u, v int) bool {
	ns := a.neighbors(u)
	i := sort.SearchInts(ns, v)
	return i < len(ns) && ns[i] == v
}

// newAdjacency validates g and snapshots it.
// Complexity: O(n + m log Δ) time, O(n + m) space.
func newAdjacency(g Graph) (*adjacency, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidGraph, "negative order %d", n)
	}

	a := &adjacency{off: make([]int, n+1)}
	mark := bits.New(n)

	// 1) Copy lists, rejecting out-of-range ids, loops and duplicates.
	for v := 0; v < n; v++ {
		ns := g.Neighbors(v)
		a.off[v] = len(a.nbr)
		for _, w := range ns {
			switch {
			case w < 0 || w >= n:
				return nil, errors.Wrapf(ErrInvalidGraph, "node %d: neighbor %d out of range [0,%d)", v, w, n)
			case w == v:
				return nil, errors.Wrapf(ErrInvalidGraph, "node %d: self-loop", v)
			case mark.Bit(w) == 1:
				return nil, errors.Wrapf(ErrInvalidGraph, "node %d: parallel edge to %d", v, w)
			}
			mark.SetBit(w, 1)
			a.nbr = append(a.nbr, w)
		}
		for _, w := range ns {
			mark.SetBit(w, 0)
		}
		sort.Ints(a.nbr[a.off[v]:])
	}
	a.off[n] = len(a.nbr)

	// 2) Every arc must have its mirror.
	for v := 0; v < n; v++ {
		for _, w := range a.neighbors(v) {
			if !a.hasEdge(w, v) {
				return nil, errors.Wrapf(ErrInvalidGraph, "edge %d-%d is not symmetric", v, w)
			}
		}
	}

	return a, nil
}
