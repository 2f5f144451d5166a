// File: types.go
// Role: Graph type, GraphOption, sentinel errors and the NewGraph constructor.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
//	ErrBadMapping          - Relabel mapping is not a bijection on the vertex set.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrBadMapping indicates a vertex renaming that is not a bijection.
	ErrBadMapping = errors.New("core: mapping is not a bijection on the vertex set")
)

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is an undirected, unweighted in-memory graph keyed by string vertex IDs.
//
// By default it is simple (no loops, no parallel edges), which is exactly the
// input class canonical keys are defined on. Loops and multi-edges can be
// enabled to model raw data; such graphs are rejected by canon.
//
// adjacency[u][v] is the multiplicity of edge {u,v}; it is mirrored, and a
// loop is stored once as adjacency[v][v].
type Graph struct {
	mu sync.RWMutex // guards every field below

	// Configuration flags
	allowMulti bool
	allowLoops bool

	// Storage
	adjacency map[string]map[string]int
	edgeCount int
}

// NewGraph creates an empty simple Graph with the given options.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{adjacency: make(map[string]map[string]int)}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool { return g.allowMulti }

// options rebuilds the GraphOption list matching g's flags.
func (g *Graph) options() []GraphOption {
	var opts []GraphOption
	if g.allowMulti {
		opts = append(opts, WithMultiEdges())
	}
	if g.allowLoops {
		opts = append(opts, WithLoops())
	}
	return opts
}
