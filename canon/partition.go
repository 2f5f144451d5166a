// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// partition.go — ordered partition of NodeIds into color cells.
//
// Representation (flat, index-based; no per-cell objects):
//   • elems[i]      node stored at flat position i; a cell is a contiguous run.
//   • pos[v]        flat position of node v (inverse of elems).
//   • cellOf[v]     start offset of v's cell; this offset IS the node's color.
//   • cellLen[s]    length of the cell starting at s (only valid at cell starts).
//   • open          set of starts of non-singleton cells.
//   • trail         ordered record of every cell creation, used by undo.
//
// Invariants (checked by validate):
//   • elems is a permutation of [0,n) and pos is its inverse.
//   • Cells tile [0,n) without gaps; every member of the cell at s has cellOf == s.
//   • open holds exactly the starts s with cellLen[s] > 1.
//   • Cells are only ever split; undo only merges what the trail recorded.
//
// Ordering:
//   • Cell order is the order of start offsets. A split keeps the first piece
//     at the original start, so a cell never moves once created.

package canon

import (
	"fmt"
	"sort"

	"github.com/soniakeys/bits"
)

// splitRecord notes that cell child was cut off the tail of cell prev.
// prev is the piece immediately preceding child at creation time, so undoing
// records in reverse order always merges two adjacent runs.
type splitRecord struct {
	prev  int
	child int
}

type partition struct {
	elems   []int
	pos     []int
	cellOf  []int
	cellLen []int
	cells   int
	open    bits.Bits
	trail   []splitRecord

	// scratch for split; reused to avoid churn in the refinement loop
	keys []int
}

// newPartition builds the initial ordered partition: one cell per distinct
// value of color(v), cells ordered by increasing color, members of a cell in
// increasing NodeId order.
// Complexity: O(n log n).
func newPartition(n int, color func(v int) int) *partition {
	p := &partition{
		elems:   make([]int, n),
		pos:     make([]int, n),
		cellOf:  make([]int, n),
		cellLen: make([]int, n),
		open:    bits.New(n),
		trail:   make([]splitRecord, 0, n),
	}
	if n == 0 {
		return p
	}

	colors := make([]int, n)
	for v := 0; v < n; v++ {
		p.elems[v] = v
		colors[v] = color(v)
	}
	sort.SliceStable(p.elems, func(i, j int) bool {
		return colors[p.elems[i]] < colors[p.elems[j]]
	})

	start := 0
	for i := 0; i < n; i++ {
		v := p.elems[i]
		p.pos[v] = i
		if i > 0 && colors[v] != colors[p.elems[i-1]] {
			p.cellLen[start] = i - start
			p.reopen(start)
			p.cells++
			start = i
		}
		p.cellOf[v] = start
	}
	p.cellLen[start] = n - start
	p.reopen(start)
	p.cells++

	// The initial cells are the base state; they are never undone.
	return p
}

func (p *partition) order() int { return len(p.elems) }

func (p *partition) cellCount() int { return p.cells }

func (p *partition) isDiscrete() bool { return p.cells == len(p.elems) }

// colorOf returns the start offset of v's cell.
func (p *partition) colorOf(v int) int { return p.cellOf[v] }

// reopen records whether the cell starting at s is a non-singleton.
func (p *partition) reopen(s int) {
	if p.cellLen[s] > 1 {
		p.open.SetBit(s, 1)
	} else {
		p.open.SetBit(s, 0)
	}
}

// nextOpen returns the first non-singleton cell start at or after s, or -1.
func (p *partition) nextOpen(s int) int { return p.open.OneFrom(s) }

// members returns the live slice of the cell starting at s. Callers must not
// hold it across a split or undo.
func (p *partition) members(s int) []int {
	return p.elems[s : s+p.cellLen[s]]
}

// cellStarts lists the start offsets of all cells in order.
func (p *partition) cellStarts() []int {
	out := make([]int, 0, p.cells)
	for s := 0; s < len(p.elems); s += p.cellLen[s] {
		out = append(out, s)
	}
	return out
}

// snapshot returns the ordered cells with sorted members. Used by tests and
// diagnostics; not on the hot path.
func (p *partition) snapshot() [][]int {
	out := make([][]int, 0, p.cells)
	for s := 0; s < len(p.elems); s += p.cellLen[s] {
		cell := append([]int(nil), p.members(s)...)
		sort.Ints(cell)
		out = append(out, cell)
	}
	return out
}

// mark returns the current trail height for a later undo.
func (p *partition) mark() int { return len(p.trail) }

// split divides the cell starting at s into sub-cells grouped by key(v).
// Sub-cells are placed at the original position ordered by increasing key;
// the first keeps start s. It returns the start offsets of every piece
// (including s) in order, or nil when all members share one key.
//
// Complexity: O(L log L) for a cell of length L.
func (p *partition) split(s int, key func(v int) int) []int {
	L := p.cellLen[s]
	if L < 2 {
		return nil
	}
	cell := p.elems[s : s+L]

	// Cache keys by flat index so the sort does not re-evaluate key().
	if cap(p.keys) < len(p.elems) {
		p.keys = make([]int, len(p.elems))
	}
	keys := p.keys[:L]
	uniform := true
	for i, v := range cell {
		keys[i] = key(v)
		if keys[i] != keys[0] {
			uniform = false
		}
	}
	if uniform {
		return nil
	}

	sort.Sort(keyedCell{nodes: cell, keys: keys})

	pieces := []int{s}
	start := s
	for i := 0; i < L; i++ {
		v := cell[i]
		p.pos[v] = s + i
		if i > 0 && keys[i] != keys[i-1] {
			p.cellLen[start] = s + i - start
			p.trail = append(p.trail, splitRecord{prev: start, child: s + i})
			p.cells++
			start = s + i
			pieces = append(pieces, start)
		}
		p.cellOf[v] = start
	}
	p.cellLen[start] = s + L - start
	for _, c := range pieces {
		p.reopen(c)
	}

	return pieces
}

// splitSome is split for the common refinement case where only the members in
// some have a non-zero key and every key in some is positive. The untouched
// members stay in front as the key-0 piece; only some is moved and sorted.
//
// Complexity: O(k log k) for k = len(some).
func (p *partition) splitSome(s int, some []int, key func(v int) int) []int {
	L := p.cellLen[s]
	k := len(some)
	if k == L {
		return p.split(s, key)
	}
	if L < 2 || k == 0 {
		return nil
	}

	// 1) Gather the touched members at the tail of the cell.
	end := s + L
	for _, v := range some {
		end--
		i := p.pos[v]
		u := p.elems[end]
		p.elems[i], p.elems[end] = u, v
		p.pos[u], p.pos[v] = i, end
	}

	// 2) Order the tail by key.
	tail := p.elems[end : s+L]
	if cap(p.keys) < len(p.elems) {
		p.keys = make([]int, len(p.elems))
	}
	keys := p.keys[:k]
	for i, v := range tail {
		keys[i] = key(v)
	}
	sort.Sort(keyedCell{nodes: tail, keys: keys})

	// 3) Cut pieces: the untouched run keeps start s.
	p.cellLen[s] = end - s
	pieces := []int{s}
	prev, start := s, end
	for i := 0; i < k; i++ {
		v := tail[i]
		p.pos[v] = end + i
		if i > 0 && keys[i] != keys[i-1] {
			p.cellLen[start] = end + i - start
			p.trail = append(p.trail, splitRecord{prev: prev, child: start})
			p.cells++
			pieces = append(pieces, start)
			prev, start = start, end+i
		}
		p.cellOf[v] = start
	}
	p.cellLen[start] = s + L - start
	p.trail = append(p.trail, splitRecord{prev: prev, child: start})
	p.cells++
	pieces = append(pieces, start)
	for _, c := range pieces {
		p.reopen(c)
	}

	return pieces
}

// individualize moves v to the front of its cell as a singleton. The rest of
// the cell keeps its members and starts right after v. It returns the start
// offset of the singleton (the original cell start).
func (p *partition) individualize(v int) int {
	s := p.cellOf[v]
	L := p.cellLen[s]
	if L < 2 {
		return s
	}

	// Swap v into the first slot of the cell.
	i, j := p.pos[v], s
	u := p.elems[j]
	p.elems[i], p.elems[j] = u, v
	p.pos[u], p.pos[v] = i, j

	rest := s + 1
	p.cellLen[s] = 1
	p.cellLen[rest] = L - 1
	for k := rest; k < s+L; k++ {
		p.cellOf[p.elems[k]] = rest
	}
	p.trail = append(p.trail, splitRecord{prev: s, child: rest})
	p.cells++
	p.open.SetBit(s, 0)
	p.reopen(rest)

	return s
}

// discretize cuts every non-singleton cell into singletons, members in
// increasing NodeId order. Each cut is trailed, so undo restores the cells.
func (p *partition) discretize() {
	for c := p.nextOpen(0); c >= 0; c = p.nextOpen(c + 1) {
		cell := p.elems[c : c+p.cellLen[c]]
		sort.Ints(cell)
		for i, v := range cell {
			p.pos[v] = c + i
			p.cellOf[v] = c + i
			p.cellLen[c+i] = 1
			if i > 0 {
				p.trail = append(p.trail, splitRecord{prev: c + i - 1, child: c + i})
				p.cells++
			}
		}
		p.open.SetBit(c, 0)
	}
}

// undo merges back every cell created after trail mark m, newest first.
// Membership of every cell is restored exactly; order inside a cell is not,
// and nothing in the engine depends on it.
func (p *partition) undo(m int) {
	for k := len(p.trail) - 1; k >= m; k-- {
		r := p.trail[k]
		end := r.child + p.cellLen[r.child]
		for i := r.child; i < end; i++ {
			p.cellOf[p.elems[i]] = r.prev
		}
		p.cellLen[r.prev] += p.cellLen[r.child]
		p.open.SetBit(r.prev, 1)
		p.open.SetBit(r.child, 0)
		p.cells--
	}
	p.trail = p.trail[:m]
}

// clone returns an independent deep copy, used to hand a partition to a
// parallel worker. The trail is copied so undo keeps working on the copy.
func (p *partition) clone() *partition {
	q := &partition{
		elems:   append([]int(nil), p.elems...),
		pos:     append([]int(nil), p.pos...),
		cellOf:  append([]int(nil), p.cellOf...),
		cellLen: append([]int(nil), p.cellLen...),
		cells:   p.cells,
		open:    bits.New(len(p.elems)),
		trail:   append(make([]splitRecord, 0, cap(p.trail)), p.trail...),
	}
	q.open.Set(p.open)
	return q
}

// labeling returns the flat order as a fresh slice: position -> node.
// Meaningful as a canonical candidate only when the partition is discrete.
func (p *partition) labeling() []int {
	return append([]int(nil), p.elems...)
}

// validate checks the partition invariant. It reports the first violation.
func (p *partition) validate() error {
	n := len(p.elems)
	seen := make([]bool, n)
	for i, v := range p.elems {
		if v < 0 || v >= n {
			return fmt.Errorf("element %d at position %d out of range", v, i)
		}
		if seen[v] {
			return fmt.Errorf("node %d appears twice", v)
		}
		seen[v] = true
		if p.pos[v] != i {
			return fmt.Errorf("pos[%d]=%d, want %d", v, p.pos[v], i)
		}
	}

	cells := 0
	for s := 0; s < n; {
		L := p.cellLen[s]
		if L < 1 || s+L > n {
			return fmt.Errorf("cell at %d has bad length %d", s, L)
		}
		if p.open.Bit(s) != boolBit(L > 1) {
			return fmt.Errorf("cell at %d of length %d has open bit %d", s, L, p.open.Bit(s))
		}
		for i := s; i < s+L; i++ {
			if p.cellOf[p.elems[i]] != s {
				return fmt.Errorf("node %d at position %d has color %d, want %d",
					p.elems[i], i, p.cellOf[p.elems[i]], s)
			}
		}
		cells++
		s += L
	}
	if cells != p.cells {
		return fmt.Errorf("cell count %d, tracked %d", cells, p.cells)
	}
	for s := p.nextOpen(0); s >= 0; s = p.nextOpen(s + 1) {
		if p.cellOf[p.elems[s]] != s || p.cellLen[s] < 2 {
			return fmt.Errorf("open bit set at %d, which is not a non-singleton cell start", s)
		}
	}

	return nil
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// keyedCell sorts a cell's nodes and their cached keys together.
type keyedCell struct {
	nodes []int
	keys  []int
}

func (c keyedCell) Len() int { return len(c.nodes) }

func (c keyedCell) Less(i, j int) bool { return c.keys[i] < c.keys[j] }

func (c keyedCell) Swap(i, j int) {
	c.nodes[i], c.nodes[j] = c.nodes[j], c.nodes[i]
	c.keys[i], c.keys[j] = c.keys[j], c.keys[i]
}
