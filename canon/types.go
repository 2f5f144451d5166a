// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// types.go — Graph accessor, options, sentinel errors and run statistics.

package canon

import (
	"context"
	"errors"
)

// Sentinel errors. Branch with errors.Is; messages are stable.
var (
	// ErrNilGraph is returned when a nil Graph is passed to New, Canonicalize or Validate.
	ErrNilGraph = errors.New("canon: graph is nil")

	// ErrInvalidGraph indicates the input is not a simple undirected graph.
	// It is reported before any search work starts; no key is produced.
	ErrInvalidGraph = errors.New("canon: invalid graph")

	// ErrResourceExhausted indicates the search was stopped before completion
	// (node budget, deadline or cancellation). No key is produced: a partial
	// search would not be canonical. Retrying with relaxed bounds is valid.
	ErrResourceExhausted = errors.New("canon: resource exhausted")

	// ErrInvariant indicates a broken internal invariant. It is a defect in the
	// engine, not in the data; the wrapped message names the search node and
	// cell involved. Do not retry.
	ErrInvariant = errors.New("canon: internal invariant violated")
)

// Graph is the read-only accessor the engine needs from a host graph.
// NodeIds are the integers [0, Order()). Neighbors must describe an undirected
// simple graph: symmetric, no self-loops, no repeated entries. The returned
// slice is only read, never retained past validation.
type Graph interface {
	Order() int
	Neighbors(v int) []int
}

// AdjacencyList is the plain slice-of-slices Graph: AdjacencyList[v] lists v's neighbors.
type AdjacencyList [][]int

// Order returns the node count.
func (a AdjacencyList) Order() int { return len(a) }

// Neighbors returns v's neighbor list.
func (a AdjacencyList) Neighbors(v int) []int { return a[v] }

// Option configures a canonicalization run.
type Option func(*Options)

// Options holds the resolved configuration of a run.
type Options struct {
	// Ctx bounds the run; cancellation or deadline aborts with ErrResourceExhausted.
	Ctx context.Context

	// MaxNodes caps the number of search nodes visited. Zero or negative means no cap.
	MaxNodes int

	// Parallelism is the number of workers exploring the root's children.
	// Values below 2 run the sequential search.
	Parallelism int

	// CheckInvariants enables partition and automorphism self-checks after
	// every step. Slow; meant for tests and debugging.
	CheckInvariants bool
}

// DefaultOptions returns Background context, no node cap, sequential search
// and no self-checks.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		MaxNodes:        0,
		Parallelism:     1,
		CheckInvariants: false,
	}
}

// WithContext sets the run's context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxNodes caps the number of search nodes the run may visit.
func WithMaxNodes(limit int) Option {
	return func(o *Options) {
		o.MaxNodes = limit
	}
}

// WithParallelism explores the root's children with the given number of workers.
func WithParallelism(workers int) Option {
	return func(o *Options) {
		o.Parallelism = workers
	}
}

// WithInvariantChecks turns the engine's self-checks on or off.
func WithInvariantChecks(on bool) Option {
	return func(o *Options) {
		o.CheckInvariants = on
	}
}

// Stats are diagnostics of one run.
type Stats struct {
	Nodes      int // search nodes visited (each one refined partition)
	Leaves     int // discrete partitions reached
	Pruned     int // children skipped by orbit pruning
	Jumps      int // subtrees abandoned after an automorphism was found
	Generators int // automorphisms registered
	MaxDepth   int // deepest individualization level reached
	Splits     int // cells created by refinement
	Collapsed  int // search nodes whose whole subtree reduced to one leaf
	Components int // connected components keyed separately
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Leaves += o.Leaves
	s.Pruned += o.Pruned
	s.Jumps += o.Jumps
	s.Generators += o.Generators
	s.Splits += o.Splits
	s.Collapsed += o.Collapsed
	s.Components += o.Components
	if o.MaxDepth > s.MaxDepth {
		s.MaxDepth = o.MaxDepth
	}
}
