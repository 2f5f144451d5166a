// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// refine.go — equitable refinement (1-dimensional color refinement).
//
// Contract:
//   • Input: an ordered partition and the cells to use as first splitters.
//   • Output: the coarsest equitable partition refining the input, in place.
//   • Every node's neighbor count into every cell is uniform across its own cell
//     when refine returns.
//
// Strategy (splitter queue):
//   • The queue is a bitset indexed by cell start; the splitter taken next is
//     always the lowest queued start.
//   • For splitter W, count |N(v) ∩ W| for all v, then split every touched cell
//     by that count, pieces in increasing count order. Touched cells are
//     handled in increasing start order. Only touched nodes move, so a split
//     costs O(k log k) in the touched count k, not in the cell length.
//   • A split cell that was queued gets all its new pieces queued; otherwise all
//     pieces but the first largest are queued (the omitted piece's counts are
//     implied by its parent's and its siblings').
//
// Determinism:
//   • Every choice depends only on cell starts and counts, never on NodeIds, so
//     refine commutes with relabeling: refine(π^γ) = refine(π)^γ.

package canon

import (
	"sort"

	"github.com/soniakeys/bits"
)

type refiner struct {
	adj *adjacency

	count   []int // |N(v) ∩ W| for the current splitter W
	touched []int // nodes with count > 0

	queue bits.Bits

	splits int // cells created over the refiner's lifetime
}

func newRefiner(adj *adjacency) *refiner {
	n := adj.order()
	return &refiner{
		adj:     adj,
		count:   make([]int, n),
		touched: make([]int, 0, n),
		queue:   bits.New(n),
	}
}

// refineAll refines with every current cell as a splitter.
func (r *refiner) refineAll(p *partition) []int {
	return r.refine(p, p.cellStarts())
}

// refine runs the splitter queue to its fixed point, seeded with the cells
// starting at seeds. It returns the trace: start offsets of the cells created,
// in creation order.
//
// Complexity: O(m log n) splitter work in the usual case; each split sorts
// only the touched members of the split cell.
func (r *refiner) refine(p *partition, seeds []int) []int {
	if p.order() == 0 {
		return nil
	}

	for _, s := range seeds {
		r.queue.SetBit(s, 1)
	}

	var trace []int
	for {
		if p.isDiscrete() {
			r.drain()
			break
		}
		w := r.queue.OneFrom(0)
		if w < 0 {
			break
		}
		r.queue.SetBit(w, 0)

		// 1) Count neighbors inside the splitter.
		for _, u := range p.members(w) {
			for _, x := range r.adj.neighbors(u) {
				if r.count[x] == 0 {
					r.touched = append(r.touched, x)
				}
				r.count[x]++
			}
		}

		// 2) Split touched cells in start order. Grouping is fixed before any
		// split; a split only recolors members of its own group.
		sort.Sort(byCell{nodes: r.touched, cellOf: p.cellOf})
		for i := 0; i < len(r.touched); {
			c := p.cellOf[r.touched[i]]
			j := i + 1
			for j < len(r.touched) && p.cellOf[r.touched[j]] == c {
				j++
			}
			group := r.touched[i:j]
			i = j

			if p.cellLen[c] == 1 {
				continue
			}
			wasQueued := r.queue.Bit(c) == 1
			pieces := p.splitSome(c, group, r.countOf)
			if pieces == nil {
				continue
			}
			trace = append(trace, pieces[1:]...)
			r.splits += len(pieces) - 1
			r.enqueue(p, pieces, wasQueued)
		}

		// 3) Reset scratch for the next splitter.
		for _, x := range r.touched {
			r.count[x] = 0
		}
		r.touched = r.touched[:0]
	}

	return trace
}

func (r *refiner) countOf(v int) int { return r.count[v] }

func (r *refiner) enqueue(p *partition, pieces []int, wasQueued bool) {
	if wasQueued {
		for _, s := range pieces[1:] {
			r.queue.SetBit(s, 1)
		}
		return
	}

	largest := pieces[0]
	for _, s := range pieces[1:] {
		if p.cellLen[s] > p.cellLen[largest] {
			largest = s
		}
	}
	for _, s := range pieces {
		if s != largest {
			r.queue.SetBit(s, 1)
		}
	}
}

// byCell orders touched nodes by the start of their cell.
type byCell struct {
	nodes  []int
	cellOf []int
}

func (b byCell) Len() int           { return len(b.nodes) }
func (b byCell) Less(i, j int) bool { return b.cellOf[b.nodes[i]] < b.cellOf[b.nodes[j]] }
func (b byCell) Swap(i, j int)      { b.nodes[i], b.nodes[j] = b.nodes[j], b.nodes[i] }

// drain empties the queue once the partition is discrete.
func (r *refiner) drain() {
	if !r.queue.AllZeros() {
		r.queue.ClearAll()
	}
}
