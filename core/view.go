// File: view.go
// Role: Non-mutating graph views: dense indexed snapshot, relabeled copy and
//       induced subgraph.
// Determinism:
//   - Indexed numbers vertices in ascending ID order; neighbor lists ascending.
// Concurrency:
//   - Read lock on the source; results are independent of later mutations.

package core

import (
	"fmt"
	"sort"
)

// IndexedView is an immutable dense snapshot of a Graph: vertex i is the i-th
// smallest ID. It satisfies canon.Graph (Order, Neighbors) and is safe to
// share across goroutines.
type IndexedView struct {
	ids   []string
	index map[string]int
	nbrs  [][]int
}

// Indexed snapshots g as an IndexedView. Parallel edges repeat a neighbor and
// a loop lists the vertex itself, so non-simple graphs stay visible to
// validators downstream.
//
// Complexity: O(V log V + E log Δ).
func (g *Graph) Indexed() *IndexedView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := g.sortedIDs()
	view := &IndexedView{
		ids:   ids,
		index: make(map[string]int, len(ids)),
		nbrs:  make([][]int, len(ids)),
	}
	for i, id := range ids {
		view.index[id] = i
	}
	for i, id := range ids {
		row := make([]int, 0, len(g.adjacency[id]))
		for nb, mult := range g.adjacency[id] {
			for k := 0; k < mult; k++ {
				row = append(row, view.index[nb])
			}
		}
		sort.Ints(row)
		view.nbrs[i] = row
	}

	return view
}

// Order returns the vertex count.
func (v *IndexedView) Order() int { return len(v.ids) }

// Neighbors returns the dense neighbor indexes of vertex i. Callers must not mutate it.
func (v *IndexedView) Neighbors(i int) []int { return v.nbrs[i] }

// IDs returns the vertex IDs by index.
func (v *IndexedView) IDs() []string { return append([]string(nil), v.ids...) }

// ID returns the vertex ID at index i.
func (v *IndexedView) ID(i int) string { return v.ids[i] }

// Index returns the dense index of id.
func (v *IndexedView) Index(id string) (int, bool) {
	i, ok := v.index[id]
	return i, ok
}

// Relabel returns an isomorphic copy of g with every vertex renamed through
// mapping, which must be a bijection from g's vertex set onto a set of
// non-empty IDs. g is not mutated.
//
// Errors:
//   - ErrBadMapping: a vertex is unmapped, maps to "", or two vertices collide.
//
// Complexity: O(V + E).
func Relabel(g *Graph, mapping map[string]string) (*Graph, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	used := make(map[string]string, len(g.adjacency))
	for id := range g.adjacency {
		to, ok := mapping[id]
		if !ok || to == "" {
			return nil, fmt.Errorf("Relabel: vertex %q: %w", id, ErrBadMapping)
		}
		if prev, dup := used[to]; dup {
			return nil, fmt.Errorf("Relabel: %q and %q both map to %q: %w", prev, id, to, ErrBadMapping)
		}
		used[to] = id
	}

	out := NewGraph(g.options()...)
	for id, nbrs := range g.adjacency {
		cp := make(map[string]int, len(nbrs))
		for nb, mult := range nbrs {
			cp[mapping[nb]] = mult
		}
		out.adjacency[mapping[id]] = cp
	}
	out.edgeCount = g.edgeCount

	return out, nil
}

// InducedSubgraph returns a new Graph induced by the set keep of vertex IDs:
// the vertices v with keep[v], and every edge with both endpoints kept.
//
// Complexity: O(V + E).
func InducedSubgraph(g *Graph, keep map[string]bool) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGraph(g.options()...)
	for id, nbrs := range g.adjacency {
		if !keep[id] {
			continue
		}
		cp := make(map[string]int)
		for nb, mult := range nbrs {
			if keep[nb] {
				cp[nb] = mult
				if nb >= id {
					out.edgeCount += mult
				}
			}
		}
		out.adjacency[id] = cp
	}

	return out
}
