// Package bfs provides breadth-first search over a core.Graph and the
// connected-component split built on it.
//
// Neighbors are explored in sorted-ID order, so Order is deterministic.
// Components feeds per-component canonical keys: a graph's isomorphism
// class is determined by the multiset of its components' classes.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/graphkey/core"
)

type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state. visited may be shared across
// several walks (see Components).
type walker struct {
	graph   *core.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

func newOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// BFS runs breadth-first search on g from startID.
// Errors: ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
// ctx.Err() on cancellation, or a wrapped OnVisit error.
func BFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	w := newWalker(g, o, make(map[string]bool, g.VertexCount()))
	w.enqueue(startID, 0, "")
	return w.res, w.loop()
}

func newWalker(g *core.Graph, o Options, visited map[string]bool) *walker {
	return &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		visited: visited,
		res: &Result{
			Depth:  make(map[string]int),
			Parent: make(map[string]string),
		},
	}
}

func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}

		if w.opts.MaxDepth > 0 && item.depth+1 > w.opts.MaxDepth {
			continue
		}
		nbrs, err := w.graph.NeighborIDs(item.id)
		if err != nil {
			return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
		}
		for _, nb := range nbrs {
			if !w.visited[nb] {
				w.enqueue(nb, item.depth+1, item.id)
			}
		}
	}
	return nil
}

// Components returns the connected components of g. Each component lists
// its vertices in BFS order from its smallest ID; components are ordered by
// that smallest ID. MaxDepth is ignored.
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	o.MaxDepth = 0

	visited := make(map[string]bool, g.VertexCount())
	var out [][]string
	for _, v := range g.Vertices() {
		if visited[v] {
			continue
		}
		w := newWalker(g, o, visited)
		w.enqueue(v, 0, "")
		if err = w.loop(); err != nil {
			return nil, err
		}
		out = append(out, w.res.Order)
	}
	return out, nil
}
