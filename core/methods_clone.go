// File: methods_clone.go
// Role: Cloning and clearing graph instances.
// Concurrency:
//   - Read lock for snapshotting; no mutation of the source graph.

package core

// CloneEmpty returns a new Graph with identical configuration and vertices, but no edges.
//
// Complexity: O(V).
func (g *Graph) CloneEmpty() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph(g.options()...)
	for id := range g.adjacency {
		clone.adjacency[id] = make(map[string]int)
	}

	return clone
}

// Clone returns a deep copy of the Graph: configuration, vertices and edges.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph(g.options()...)
	for id, nbrs := range g.adjacency {
		cp := make(map[string]int, len(nbrs))
		for nb, mult := range nbrs {
			cp[nb] = mult
		}
		clone.adjacency[id] = cp
	}
	clone.edgeCount = g.edgeCount

	return clone
}

// Clear resets the graph to an empty state while preserving configuration flags.
//
// Complexity: O(1) for map reallocation.
func (g *Graph) Clear() {
	g.mu.Lock()
	g.adjacency = make(map[string]map[string]int)
	g.edgeCount = 0
	g.mu.Unlock()
}
