// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// canon.go — public entry points.
//
// Pipeline:
//   1) Validate the host graph and snapshot it (adjacency.go).
//   2) Split it into connected components; more than one is keyed per
//      component and reassembled (components.go).
//   3) Initial partition: cells by degree, ascending.
//   4) Refine to equitable, then search the individualization tree
//      (search.go, or parallel.go when Parallelism > 1).
//   5) The minimum certificate over all explored leaves becomes the Key
//      (of each component, when there are several).
//
// Errors: ErrNilGraph, ErrInvalidGraph, ErrResourceExhausted, ErrInvariant.
// No partial Key is ever returned.

package canon

import (
	"github.com/plan-systems/klog"
)

// Result is the full outcome of a canonicalization run.
type Result struct {
	// Key is the canonical key of the graph.
	Key Key

	// Labeling maps each NodeId to its canonical position. Relabeling the
	// input by it yields exactly the graph encoded in Key.
	Labeling []int

	// Generators are the automorphisms discovered during the search. They
	// generate a subgroup of Aut(G); its orbits are at least as coarse as the
	// pruning needed, and usually equal the orbits of Aut(G).
	Generators []Automorphism

	// Stats are diagnostics of the run.
	Stats Stats
}

// CanonicalGraph returns the canonical representative: the input relabeled by
// Labeling, with sorted neighbor lists.
func (r *Result) CanonicalGraph() AdjacencyList {
	return r.Key.Graph()
}

// Orbits returns the node orbits under the discovered generators, each sorted
// and ordered by smallest member.
func (r *Result) Orbits() [][]int {
	return orbitPartition(len(r.Labeling), r.Generators)
}

// New returns the canonical key of g.
func New(g Graph, opts ...Option) (Key, error) {
	res, err := Canonicalize(g, opts...)
	if err != nil {
		return Key{}, err
	}
	return res.Key, nil
}

// Canonicalize computes the canonical key of g together with the canonical
// labeling, discovered automorphisms and run statistics.
func Canonicalize(g Graph, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	adj, err := newAdjacency(g)
	if err != nil {
		return nil, err
	}

	r := &run{opts: o, visited: new(int64)}
	var res *Result
	if comps := adj.components(); len(comps) > 1 {
		res, err = r.disconnected(adj, comps)
	} else {
		res, err = r.connected(adj)
	}
	if err != nil {
		klog.V(2).Infof("canon: n=%d m=%d aborted after %d nodes: %v", adj.order(), adj.size(), r.nodes(), err)
		return nil, err
	}
	res.Stats.Generators = len(res.Generators)

	st := res.Stats
	klog.V(3).Infof("canon: n=%d m=%d components=%d nodes=%d leaves=%d collapsed=%d pruned=%d jumps=%d gens=%d depth=%d",
		adj.order(), adj.size(), st.Components, st.Nodes, st.Leaves, st.Collapsed, st.Pruned, st.Jumps, st.Generators, st.MaxDepth)

	return res, nil
}

// Validate reports whether g is an acceptable input without searching.
func Validate(g Graph) error {
	_, err := newAdjacency(g)
	return err
}
