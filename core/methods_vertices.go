// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns IDs sorted lexicographically ascending.
//
// Concurrency:
//   - All methods take g.mu; queries use the read lock.
package core

import "sort"

// AddVertex inserts a vertex if missing (idempotent).
//
// Implementation:
//   - Stage 1: Validate non-empty ID (ErrEmptyVertexID).
//   - Stage 2: Under the write lock, allocate an empty neighbor bucket if absent.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureVertex(id)

	return nil
}

// ensureVertex creates id's bucket. Caller holds the write lock.
func (g *Graph) ensureVertex(id string) map[string]int {
	nbrs, ok := g.adjacency[id]
	if !ok {
		nbrs = make(map[string]int)
		g.adjacency[id] = nbrs
	}
	return nbrs
}

// HasVertex reports whether the vertex ID exists (empty ID ⇒ false).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[id]

	return ok
}

// RemoveVertex deletes a vertex and every incident edge.
//
// Implementation:
//   - Stage 1: Validate ID and presence.
//   - Stage 2: Drop the mirrored entries in every neighbor bucket, adjusting the edge count.
//   - Stage 3: Drop the vertex bucket itself.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(deg(v)), Space O(1).
func (g *Graph) RemoveVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return ErrVertexNotFound
	}
	for nb, mult := range nbrs {
		g.edgeCount -= mult
		if nb != id {
			delete(g.adjacency[nb], id)
		}
	}
	delete(g.adjacency, id)

	return nil
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.sortedIDs()
}

// sortedIDs lists vertex IDs in ascending order. Caller holds a lock.
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.adjacency))
	for id := range g.adjacency {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency)
}

// NeighborIDs returns the neighbors of id sorted ascending. A parallel edge
// repeats its neighbor once per edge; a loop lists id once.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(d log d).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	return expand(nbrs), nil
}

// expand flattens a multiplicity bucket into a sorted ID list.
func expand(nbrs map[string]int) []string {
	out := make([]string, 0, len(nbrs))
	for nb, mult := range nbrs {
		for i := 0; i < mult; i++ {
			out = append(out, nb)
		}
	}
	sort.Strings(out)
	return out
}

// Degree returns the number of neighbor entries of id, consistent with
// NeighborIDs: each parallel edge counts, a loop counts once.
func (g *Graph) Degree(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return 0, ErrVertexNotFound
	}
	d := 0
	for _, mult := range nbrs {
		d += mult
	}

	return d, nil
}
