// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// components.go — keying a disconnected graph one component at a time.
//
// Assembly:
//   • Each connected component is searched on its own induced snapshot.
//   • Components are ordered by their certificates. Equal certificates mean
//     isomorphic components, so any order among them yields the same graph.
//   • The labeling concatenates the component labelings in that order; the
//     key is the certificate of the whole graph under it.
//
// Generators:
//   • Each component's generators, renamed to the caller's NodeIds.
//   • For consecutive isomorphic components, the swap exchanging them
//     position by position. With the former these generate Aut(G).

package canon

import (
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/soniakeys/bits"
)

// components returns the connected components, each in increasing NodeId
// order, ordered by their smallest NodeId.
func (a *adjacency) components() [][]int {
	n := a.order()
	seen := bits.New(n)
	var out [][]int
	for v := 0; v < n; v++ {
		if seen.Bit(v) == 1 {
			continue
		}
		seen.SetBit(v, 1)
		comp := []int{v}
		for i := 0; i < len(comp); i++ {
			for _, w := range a.neighbors(comp[i]) {
				if seen.Bit(w) == 0 {
					seen.SetBit(w, 1)
					comp = append(comp, w)
				}
			}
		}
		sort.Ints(comp)
		out = append(out, comp)
	}
	return out
}

// induced snapshots the subgraph on nodes, renumbered 0..len(nodes)-1 in
// order. nodes must be sorted and closed under adjacency; local is scratch of
// length a.order().
func (a *adjacency) induced(nodes []int, local []int) *adjacency {
	sub := &adjacency{off: make([]int, len(nodes)+1)}
	for i, v := range nodes {
		local[v] = i
	}
	for i, v := range nodes {
		sub.off[i] = len(sub.nbr)
		for _, w := range a.neighbors(v) {
			sub.nbr = append(sub.nbr, local[w])
		}
	}
	sub.off[len(nodes)] = len(sub.nbr)
	return sub
}

// run carries what the searches of one Canonicalize call share.
type run struct {
	opts    Options
	visited *int64
}

func (r *run) nodes() int64 { return atomic.LoadInt64(r.visited) }

// search explores adj to completion with the run's options and budget.
func (r *run) search(adj *adjacency) (*search, error) {
	s := newSearch(adj, r.opts)
	s.visited = r.visited

	var err error
	if r.opts.Parallelism > 1 {
		err = s.runParallel(r.opts.Parallelism)
	} else {
		err = s.run()
	}
	s.stats.Splits += s.ref.splits
	return s, err
}

// connected canonicalizes adj as a single search.
func (r *run) connected(adj *adjacency) (*Result, error) {
	s, err := r.search(adj)
	if err != nil {
		return nil, err
	}

	best := s.global.get()
	res := &Result{
		Key:        keyOf(best.cert),
		Labeling:   make([]int, adj.order()),
		Generators: s.track.snapshot(),
		Stats:      s.stats,
	}
	for i, v := range best.lab {
		res.Labeling[v] = i
	}
	if adj.order() > 0 {
		res.Stats.Components = 1
	}
	return res, nil
}

// component is one searched connected component.
type component struct {
	nodes []int // caller NodeIds, increasing; index = local NodeId
	best  *leaf
	gens  []Automorphism
}

// disconnected canonicalizes each of comps and assembles the result.
func (r *run) disconnected(adj *adjacency, comps [][]int) (*Result, error) {
	var stats Stats
	parts := make([]component, len(comps))
	local := make([]int, adj.order())
	for i, nodes := range comps {
		s, err := r.search(adj.induced(nodes, local))
		stats.add(s.stats)
		if err != nil {
			return nil, err
		}
		parts[i] = component{nodes: nodes, best: s.global.get(), gens: s.track.snapshot()}
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].best.cert.compare(parts[j].best.cert) < 0
	})

	lab := make([]int, 0, adj.order())
	var gens []Automorphism
	for i, c := range parts {
		start := len(lab)
		for _, v := range c.best.lab {
			lab = append(lab, c.nodes[v])
		}
		for _, a := range c.gens {
			gens = append(gens, a.lift(c.nodes))
		}

		if i == 0 || parts[i-1].best.cert.compare(c.best.cert) != 0 {
			continue
		}
		prev, cur := lab[start-len(c.nodes):start], lab[start:]
		from := append(append(make([]int, 0, 2*len(cur)), prev...), cur...)
		to := append(append(make([]int, 0, 2*len(cur)), cur...), prev...)
		swap := newAutomorphism(from, to)
		if r.opts.CheckInvariants && !swap.preserves(adj) {
			return nil, errors.Wrapf(ErrInvariant, "components %v and %v: swap is not an automorphism",
				parts[i-1].nodes, c.nodes)
		}
		gens = append(gens, swap)
	}

	res := &Result{
		Key:        keyOf(newCertBuilder(adj).build(lab)),
		Labeling:   make([]int, adj.order()),
		Generators: gens,
		Stats:      stats,
	}
	for i, v := range lab {
		res.Labeling[v] = i
	}
	res.Stats.Components = len(comps)
	return res, nil
}
