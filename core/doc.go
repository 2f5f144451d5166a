// Package core provides the thread-safe, in-memory host graph that graphkey
// canonicalizes: an undirected, unweighted graph keyed by string vertex IDs.
//
// The Graph G = (V,E) is simple by default, which is the input class canonical
// keys are defined on:
//
//   - Self-loops are rejected unless WithLoops is given.
//   - Parallel edges are rejected unless WithMultiEdges is given.
//   - Edges are stored as mirrored multiplicities: adjacency[u][v] = #edges{u,v}.
//   - One sync.RWMutex guards the whole graph; all queries take the read lock.
//
// Why use core.Graph?
//
//   - Build graphs from named data (molecules, networks, configs) and hand a
//     dense snapshot to canon via Indexed(), which satisfies canon.Graph.
//   - Deterministic iteration: Vertices(), Edges(), NeighborIDs() are sorted.
//   - Relabel produces isomorphic copies for invariance checks.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error          // O(1)
//	HasVertex(id string) bool           // O(1)
//	RemoveVertex(id string) error       // O(deg(v))
//
//	// Edge lifecycle
//	AddEdge(from, to string) error      // O(1), creates missing endpoints
//	RemoveEdge(from, to string) error   // O(1), one copy of a parallel edge
//	HasEdge(from, to string) bool       // O(1)
//
//	// Query
//	NeighborIDs(id string) ([]string, error) // O(d·log d), parallel edges repeated
//	Degree(id string) (int, error)           // len(NeighborIDs(id))
//	Vertices() []string                      // O(V·log V)
//	Edges() []Edge                           // O(E·log E)
//	VertexCount() int / EdgeCount() int      // O(1)
//
//	// Cloning & views
//	Clone() / CloneEmpty() / Clear()
//	Indexed() *IndexedView                   // dense snapshot for canon
//	Relabel(g, mapping) (*Graph, error)      // isomorphic renamed copy
//	InducedSubgraph(g, keep) *Graph
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
//	ErrBadMapping          – Relabel mapping is not a bijection
package core
