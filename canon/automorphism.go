// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// automorphism.go — Automorphism Tracker.
//
// Discovery:
//   • Two leaves with equal certificates define γ: lab1[i] ↦ lab2[i].
//     γ preserves adjacency because both labelings produce the same graph.
//   • If the two leaves share the individualization prefix v1..vk, γ fixes each
//     vi: an individualized node sits in a singleton cell that never moves, at
//     the same position in both leaves.
//
// Pruning (safety first):
//   • A search node with prefix v1..vd may skip child w when some element of
//     the group generated by the stored generators that FIX v1..vd maps a
//     smaller, already covered child onto w. Orbits of that subgroup are kept
//     in a sparse union-find whose roots are orbit minima.
//   • Using only prefix-fixing generators under-approximates the stabilizer:
//     some symmetric children may be explored needlessly, none is ever
//     skipped wrongly.

package canon

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/soniakeys/bits"
)

// Automorphism is a sparse permutation of NodeIds that preserves adjacency.
// Only moved points are stored.
type Automorphism struct {
	moved  []int // ascending
	images []int // images[i] is the image of moved[i]
}

// newAutomorphism derives γ with from[i] ↦ to[i] for every position i.
func newAutomorphism(from, to []int) Automorphism {
	var a Automorphism
	for i, v := range from {
		if to[i] != v {
			a.moved = append(a.moved, v)
			a.images = append(a.images, to[i])
		}
	}
	sort.Sort(byMoved(a))
	return a
}

// Apply returns the image of v.
func (a Automorphism) Apply(v int) int {
	i := sort.SearchInts(a.moved, v)
	if i < len(a.moved) && a.moved[i] == v {
		return a.images[i]
	}
	return v
}

// Support returns the moved points in ascending order.
func (a Automorphism) Support() []int {
	return append([]int(nil), a.moved...)
}

// IsIdentity reports whether no point moves.
func (a Automorphism) IsIdentity() bool { return len(a.moved) == 0 }

// Permutation expands the automorphism into a dense slice of length n.
func (a Automorphism) Permutation(n int) []int {
	perm := make([]int, n)
	for v := range perm {
		perm[v] = v
	}
	for i, v := range a.moved {
		perm[v] = a.images[i]
	}
	return perm
}

// fingerprint encodes the moved points and their images; equal permutations
// have equal fingerprints.
func (a Automorphism) fingerprint() string {
	b := make([]byte, 0, 8*len(a.moved))
	for i, v := range a.moved {
		b = binary.BigEndian.AppendUint32(b, uint32(v))
		b = binary.BigEndian.AppendUint32(b, uint32(a.images[i]))
	}
	return string(b)
}

// lift renames every point through names (local NodeId -> NodeId). names
// must be increasing so the moved points stay sorted.
func (a Automorphism) lift(names []int) Automorphism {
	out := Automorphism{
		moved:  make([]int, len(a.moved)),
		images: make([]int, len(a.images)),
	}
	for i, v := range a.moved {
		out.moved[i] = names[v]
		out.images[i] = names[a.images[i]]
	}
	return out
}

// cellGenerators returns a transposition and a full cycle of the sorted
// members of cell; together they generate every permutation of the cell.
func cellGenerators(cell []int) []Automorphism {
	L := len(cell)
	if L < 2 {
		return nil
	}
	gens := []Automorphism{newAutomorphism(cell[:2], []int{cell[1], cell[0]})}
	if L > 2 {
		gens = append(gens, newAutomorphism(cell, append(cell[1:L:L], cell[0])))
	}
	return gens
}

// Cycles returns the non-trivial cycles, each starting at its smallest point,
// ordered by that point.
func (a Automorphism) Cycles() [][]int {
	seen := make(map[int]bool, len(a.moved))
	var out [][]int
	for _, start := range a.moved {
		if seen[start] {
			continue
		}
		var cyc []int
		for v := start; !seen[v]; v = a.Apply(v) {
			seen[v] = true
			cyc = append(cyc, v)
		}
		out = append(out, cyc)
	}
	return out
}

// preserves reports whether a maps every edge to an edge.
func (a Automorphism) preserves(adj *adjacency) bool {
	for _, v := range a.moved {
		gv := a.Apply(v)
		if adj.degree(v) != adj.degree(gv) {
			return false
		}
		for _, w := range adj.neighbors(v) {
			if !adj.hasEdge(gv, a.Apply(w)) {
				return false
			}
		}
	}
	return true
}

// fixesAll reports whether every node with a set bit in prefix is a fixed point.
func (a Automorphism) fixesAll(prefix bits.Bits) bool {
	for _, v := range a.moved {
		if prefix.Bit(v) == 1 {
			return false
		}
	}
	return true
}

type byMoved Automorphism

func (b byMoved) Len() int           { return len(b.moved) }
func (b byMoved) Less(i, j int) bool { return b.moved[i] < b.moved[j] }
func (b byMoved) Swap(i, j int) {
	b.moved[i], b.moved[j] = b.moved[j], b.moved[i]
	b.images[i], b.images[j] = b.images[j], b.images[i]
}

// orbits is a sparse union-find over NodeIds; a root is its orbit's minimum.
type orbits struct {
	parent map[int]int
}

func newOrbits() *orbits { return &orbits{parent: make(map[int]int)} }

func (o *orbits) find(v int) int {
	root := v
	for {
		p, ok := o.parent[root]
		if !ok {
			break
		}
		root = p
	}
	for v != root {
		next := o.parent[v]
		o.parent[v] = root
		v = next
	}
	return root
}

func (o *orbits) union(a, b int) {
	ra, rb := o.find(a), o.find(b)
	switch {
	case ra == rb:
	case ra < rb:
		o.parent[rb] = ra
	default:
		o.parent[ra] = rb
	}
}

// absorb merges the cycles of a into the orbit partition.
func (o *orbits) absorb(a Automorphism) {
	for i, v := range a.moved {
		o.union(v, a.images[i])
	}
}

// min returns the smallest node in v's orbit.
func (o *orbits) min(v int) int { return o.find(v) }

// tracker stores discovered generators. It is safe for concurrent use so that
// parallel workers of one run can share discoveries.
type tracker struct {
	mu   sync.RWMutex
	gens []Automorphism
	seen map[string]struct{}
	root *orbits // orbits of all generators: every generator fixes the empty prefix
}

func newTracker() *tracker {
	return &tracker{root: newOrbits(), seen: make(map[string]struct{})}
}

// register stores a generator and folds it into the root orbits. It reports
// false, storing nothing, when the same permutation is already registered.
func (t *tracker) register(a Automorphism) bool {
	id := a.fingerprint()
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.seen[id]; dup {
		return false
	}
	t.seen[id] = struct{}{}
	t.gens = append(t.gens, a)
	t.root.absorb(a)
	return true
}

// snapshot returns the generators registered so far. The slice is never
// mutated in place, only appended to, so the snapshot stays valid.
func (t *tracker) snapshot() []Automorphism {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.gens[:len(t.gens):len(t.gens)]
}

// rootMin returns the orbit minimum of v under all generators.
func (t *tracker) rootMin(v int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root.min(v)
}

// canPrune reports whether the child w of a search node may be skipped: the
// node's orbits (built from generators fixing its prefix) map a smaller
// child onto w, and smaller children are already covered.
func canPrune(o *orbits, w int) bool {
	return o != nil && o.min(w) < w
}

// stabilizerOrbits builds orbits from the generators fixing every node marked
// in prefix.
func stabilizerOrbits(gens []Automorphism, prefix bits.Bits) *orbits {
	o := newOrbits()
	for _, a := range gens {
		if a.fixesAll(prefix) {
			o.absorb(a)
		}
	}
	return o
}

// orbitPartition returns the orbits of the group generated by gens on [0,n),
// each sorted, ordered by their minimum. Fixed points form singleton orbits.
func orbitPartition(n int, gens []Automorphism) [][]int {
	o := newOrbits()
	for _, a := range gens {
		o.absorb(a)
	}
	index := make(map[int]int)
	var out [][]int
	for v := 0; v < n; v++ {
		r := o.min(v)
		k, ok := index[r]
		if !ok {
			k = len(out)
			index[r] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], v)
	}
	return out
}
