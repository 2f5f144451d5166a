// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns pairs with From <= To, sorted by (From, To); parallel
//     edges repeat.
// Concurrency:
//   - Mutations under the write lock; queries under the read lock.

package core

import "sort"

// Edge is an undirected edge; Edges() reports it with From <= To.
type Edge struct {
	From string
	To   string
}

// AddEdge adds the undirected edge {from, to}, creating missing endpoints.
//
// Steps:
//  1. Validate IDs and the loop constraint.
//  2. Lock, ensure both endpoints exist.
//  3. Check the multi-edge constraint.
//  4. Bump the multiplicity in both buckets (once for a loop).
//
// Errors:
//   - ErrEmptyVertexID, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string) error {
	// 1) Input validation
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return ErrLoopNotAllowed
	}

	// 2) Endpoints
	g.mu.Lock()
	defer g.mu.Unlock()
	fromNbrs := g.ensureVertex(from)
	toNbrs := g.ensureVertex(to)

	// 3) Multi-edge constraint
	if fromNbrs[to] > 0 && !g.allowMulti {
		return ErrMultiEdgeNotAllowed
	}

	// 4) Record, mirrored unless a loop
	fromNbrs[to]++
	if from != to {
		toNbrs[from]++
	}
	g.edgeCount++

	return nil
}

// RemoveEdge removes one edge {from, to}. With parallel edges, one copy goes.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound, ErrEdgeNotFound.
func (g *Graph) RemoveEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	fromNbrs, ok := g.adjacency[from]
	if !ok {
		return ErrVertexNotFound
	}
	if _, ok = g.adjacency[to]; !ok {
		return ErrVertexNotFound
	}
	if fromNbrs[to] == 0 {
		return ErrEdgeNotFound
	}

	decrement(fromNbrs, to)
	if from != to {
		decrement(g.adjacency[to], from)
	}
	g.edgeCount--

	return nil
}

func decrement(nbrs map[string]int, id string) {
	if nbrs[id] <= 1 {
		delete(nbrs, id)
		return
	}
	nbrs[id]--
}

// HasEdge reports whether at least one edge {from, to} exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.adjacency[from][to] > 0
}

// EdgeCount returns |E|, counting parallel edges and loops once each.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Edges returns every edge once, From <= To, sorted by (From, To).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	for u, nbrs := range g.adjacency {
		for v, mult := range nbrs {
			if u > v {
				continue
			}
			for i := 0; i < mult; i++ {
				out = append(out, Edge{From: u, To: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}
