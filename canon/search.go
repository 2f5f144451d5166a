// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// search.go — Search Driver: individualization-refinement backtracking.
//
// States of a search node: REFINING → { DISCRETE (leaf), SYMMETRIC, BRANCH }.
//   • REFINING: the partition has just been refined to an equitable one.
//   • DISCRETE: every cell is a singleton; the labeling is encoded as a
//     certificate and folded into the running minimum.
//   • SYMMETRIC: every non-singleton cell induces an empty or complete graph
//     and is joined to each other cell completely or not at all. Every
//     permutation preserving the cells is then an automorphism, so all leaves
//     below share one certificate: the cells are cut into singletons in place,
//     their symmetric groups are registered, and the node is handled as a leaf.
//   • BRANCH: pick the target cell (smallest non-singleton, earliest on ties)
//     and individualize its members one by one in increasing NodeId order.
//
// Control flow:
//   • An explicit stack of frames replaces recursion; depth ≤ n.
//   • Frames do not own partitions. Backtracking undoes splits through the
//     partition trail, so memory stays O(n + m) plus the live frames.
//   • A frame only materializes its sorted candidate list and its orbit
//     structure when the search first returns to it; the descent along first
//     children costs one O(cell) scan per level.
//
// Pruning:
//   • Orbit pruning: child w is skipped when generators fixing the frame's
//     prefix map a smaller child onto w (see automorphism.go).
//   • Automorphism jump: a leaf whose certificate equals the first or the best
//     leaf's yields γ fixing the two paths' common prefix v1..vk. The current
//     child of the depth-k frame is then the image of an explored child, so the
//     search resumes at that frame's next candidate.

package canon

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/soniakeys/bits"
)

// leaf is a discrete partition reached by the search.
type leaf struct {
	path []int       // individualized nodes, in order
	lab  []int       // position -> node
	cert certificate // graph under lab
}

// frame is a BRANCH search node on the explicit stack.
type frame struct {
	depth  int // prefix length of this node (= len(path) when it is current)
	target int // start of the target cell
	mark   int // partition trail height of this node's refined state
	child  int // node individualized for the child being explored

	cands  []int   // sorted target members; nil until materialized
	next   int     // index of the next candidate in cands
	orbits *orbits // orbits of generators fixing the prefix; nil until materialized
}

// bestLeaf holds the running minimum shared by all workers of one run.
type bestLeaf struct {
	mu   sync.Mutex
	leaf *leaf
}

func (b *bestLeaf) offer(l *leaf) {
	b.mu.Lock()
	if b.leaf == nil || l.cert.compare(b.leaf.cert) < 0 {
		b.leaf = l
	}
	b.mu.Unlock()
}

func (b *bestLeaf) get() *leaf {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.leaf
}

// search is one explorer. A sequential run uses one; a parallel run forks one
// per root child, all sharing adjacency, tracker, budget and best leaf.
type search struct {
	adj   *adjacency
	opts  Options
	p     *partition
	ref   *refiner
	certs *certBuilder
	track *tracker

	stack  []*frame
	path   []int
	onPath bits.Bits

	first, best *leaf
	global      *bestLeaf
	visited     *int64 // search nodes visited across all explorers of the run

	hits []int // per cell start: neighbor count of a representative
	hit  []int // cell starts with hits > 0

	stats Stats
}

func newSearch(adj *adjacency, opts Options) *search {
	n := adj.order()
	p := newPartition(n, adj.degree)
	return &search{
		adj:     adj,
		opts:    opts,
		p:       p,
		ref:     newRefiner(adj),
		certs:   newCertBuilder(adj),
		track:   newTracker(),
		onPath:  bits.New(n),
		global:  &bestLeaf{},
		visited: new(int64),
		hits:    make([]int, n),
	}
}

// fork returns an explorer over a private copy of the current partition that
// shares everything run-wide with s.
func (s *search) fork(opts Options) *search {
	return &search{
		adj:     s.adj,
		opts:    opts,
		p:       s.p.clone(),
		ref:     newRefiner(s.adj),
		certs:   newCertBuilder(s.adj),
		track:   s.track,
		onPath:  bits.New(s.adj.order()),
		global:  s.global,
		visited: s.visited,
		hits:    make([]int, s.adj.order()),
	}
}

// run is the sequential search from the initial partition.
func (s *search) run() error {
	if err := s.refineRoot(); err != nil {
		return err
	}
	return s.explore()
}

// refineRoot refines the degree partition and counts the root node.
func (s *search) refineRoot() error {
	s.ref.refineAll(s.p)
	if err := s.check("root"); err != nil {
		return err
	}
	return s.visit()
}

// explore runs the backtracking loop from the current, already refined and
// visited, search node until the explorer's stack is exhausted.
func (s *search) explore() error {
	for {
		// Descend along first children until the partition is discrete.
		for !s.p.isDiscrete() {
			if s.symmetric() {
				if err := s.collapse(); err != nil {
					return err
				}
				break
			}
			t := s.target()
			f := &frame{
				depth:  len(s.path),
				target: t,
				mark:   s.p.mark(),
				child:  minNode(s.p.members(t)),
			}
			s.stack = append(s.stack, f)
			if err := s.advance(f, f.child); err != nil {
				return err
			}
		}

		jump, err := s.leaf()
		if err != nil {
			return err
		}

		// Backtrack to the next child worth exploring.
		for {
			if len(s.stack) == 0 {
				return nil
			}
			f := s.stack[len(s.stack)-1]
			s.retreat(f)
			if jump >= 0 && f.depth > jump {
				s.stack = s.stack[:len(s.stack)-1]
				continue
			}
			jump = -1

			w, ok, err := s.nextChild(f)
			if err != nil {
				return err
			}
			if !ok {
				s.stack = s.stack[:len(s.stack)-1]
				continue
			}
			if err = s.advance(f, w); err != nil {
				return err
			}
			break
		}
	}
}

// target selects the smallest non-singleton cell, earliest on ties.
func (s *search) target() int {
	best, bestLen := -1, 0
	for c := s.p.nextOpen(0); c >= 0; c = s.p.nextOpen(c + 1) {
		L := s.p.cellLen[c]
		if best < 0 || L < bestLen {
			best, bestLen = c, L
			if L == 2 {
				break
			}
		}
	}
	return best
}

// symmetric reports whether the current equitable partition is SYMMETRIC.
// Equitability makes one representative per non-singleton cell enough.
func (s *search) symmetric() bool {
	p := s.p
	for c := p.nextOpen(0); c >= 0; c = p.nextOpen(c + 1) {
		for _, w := range s.adj.neighbors(p.elems[c]) {
			d := p.cellOf[w]
			if s.hits[d] == 0 {
				s.hit = append(s.hit, d)
			}
			s.hits[d]++
		}
		ok := true
		for _, d := range s.hit {
			full := p.cellLen[d]
			if d == c {
				full--
			}
			if s.hits[d] != full {
				ok = false
			}
			s.hits[d] = 0
		}
		s.hit = s.hit[:0]
		if !ok {
			return false
		}
	}
	return true
}

// collapse resolves a SYMMETRIC node: it registers the symmetric group of
// every non-singleton cell and makes the partition discrete.
func (s *search) collapse() error {
	s.stats.Collapsed++
	for c := s.p.nextOpen(0); c >= 0; c = s.p.nextOpen(c + 1) {
		cell := append([]int(nil), s.p.members(c)...)
		sort.Ints(cell)
		for _, a := range cellGenerators(cell) {
			if s.opts.CheckInvariants && !a.preserves(s.adj) {
				return errors.Wrapf(ErrInvariant, "depth %d path %v: cell %d is not symmetric", len(s.path), s.path, c)
			}
			s.register(a, len(s.path))
		}
	}
	s.p.discretize()
	return s.check("collapse")
}

// register stores a and hands it to every materialized frame of depth ≤ k,
// whose prefixes a fixes.
func (s *search) register(a Automorphism, k int) {
	s.track.register(a)
	for _, f := range s.stack {
		if f.depth <= k && f.orbits != nil {
			f.orbits.absorb(a)
		}
	}
}

// advance individualizes w as f's current child, refines, and enters the child.
func (s *search) advance(f *frame, w int) error {
	if s.opts.CheckInvariants && s.p.cellOf[w] != f.target {
		return errors.Wrapf(ErrInvariant, "depth %d path %v: child %d not in target cell %d",
			f.depth, s.path, w, f.target)
	}

	f.child = w
	s.path = append(s.path, w)
	s.onPath.SetBit(w, 1)

	cell := s.p.individualize(w)
	s.ref.refine(s.p, []int{cell})

	if len(s.path) > s.stats.MaxDepth {
		s.stats.MaxDepth = len(s.path)
	}
	if err := s.check("child"); err != nil {
		return err
	}
	return s.visit()
}

// retreat restores f's refined state: undo the partition, trim the path.
func (s *search) retreat(f *frame) {
	s.p.undo(f.mark)
	for _, v := range s.path[f.depth:] {
		s.onPath.SetBit(v, 0)
	}
	s.path = s.path[:f.depth]
}

// nextChild returns f's next candidate not pruned by orbits.
func (s *search) nextChild(f *frame) (int, bool, error) {
	if f.cands == nil {
		if err := s.materialize(f); err != nil {
			return 0, false, err
		}
	}

	for f.next < len(f.cands) {
		w := f.cands[f.next]
		f.next++
		if canPrune(f.orbits, w) {
			if s.opts.CheckInvariants && s.p.cellOf[f.orbits.min(w)] != f.target {
				return 0, false, errors.Wrapf(ErrInvariant,
					"depth %d path %v: orbit of %d leaves target cell %d", f.depth, s.path, w, f.target)
			}
			s.stats.Pruned++
			continue
		}
		return w, true, nil
	}

	return 0, false, nil
}

// materialize builds f's candidate list and orbit structure. The partition
// must be in f's refined state.
func (s *search) materialize(f *frame) error {
	members := s.p.members(f.target)
	f.cands = append(make([]int, 0, len(members)), members...)
	sort.Ints(f.cands)

	i := sort.SearchInts(f.cands, f.child)
	if i == len(f.cands) || f.cands[i] != f.child {
		return errors.Wrapf(ErrInvariant, "depth %d path %v: explored child %d missing from target cell %d",
			f.depth, s.path, f.child, f.target)
	}
	f.next = i + 1
	f.orbits = stabilizerOrbits(s.track.snapshot(), s.onPath)

	return nil
}

// leaf handles a discrete partition. It returns the depth of the frame the
// search must resume at, or -1 for ordinary backtracking.
func (s *search) leaf() (int, error) {
	s.stats.Leaves++
	lab := s.p.labeling()
	l := &leaf{
		path: append([]int(nil), s.path...),
		lab:  lab,
		cert: s.certs.build(lab),
	}

	if s.first == nil {
		s.first, s.best = l, l
		s.global.offer(l)
		return -1, nil
	}

	jump := -1
	if l.cert.compare(s.first.cert) == 0 {
		k, err := s.automorphism(s.first, l)
		if err != nil {
			return -1, err
		}
		jump = k
	}

	switch c := l.cert.compare(s.best.cert); {
	case c == 0 && s.best != s.first:
		k, err := s.automorphism(s.best, l)
		if err != nil {
			return -1, err
		}
		if jump < 0 || k < jump {
			jump = k
		}
	case c < 0:
		s.best = l
		s.global.offer(l)
	}

	if jump >= 0 && jump < len(s.path)-1 {
		s.stats.Jumps++
	}
	return jump, nil
}

// automorphism registers γ: z.lab[i] ↦ l.lab[i] and returns the length of the
// common path prefix, which γ fixes pointwise.
func (s *search) automorphism(z, l *leaf) (int, error) {
	k := 0
	for k < len(z.path) && k < len(l.path) && z.path[k] == l.path[k] {
		k++
	}

	a := newAutomorphism(z.lab, l.lab)
	if s.opts.CheckInvariants {
		if a.IsIdentity() || !a.preserves(s.adj) {
			return -1, errors.Wrapf(ErrInvariant, "path %v: equal certificates gave a non-automorphism %v",
				l.path, a.Cycles())
		}
		for _, v := range l.path[:k] {
			if a.Apply(v) != v {
				return -1, errors.Wrapf(ErrInvariant, "path %v: automorphism moves prefix node %d", l.path, v)
			}
		}
	}
	// Frames whose prefix lies inside the common prefix can use γ at once.
	s.register(a, k)

	return k, nil
}

// visit counts one search node against the run's budget and context.
func (s *search) visit() error {
	s.stats.Nodes++
	n := atomic.AddInt64(s.visited, 1)
	if s.opts.MaxNodes > 0 && n > int64(s.opts.MaxNodes) {
		return errors.Wrapf(ErrResourceExhausted, "node budget %d spent at depth %d", s.opts.MaxNodes, len(s.path))
	}
	if n&63 == 1 {
		select {
		case <-s.opts.Ctx.Done():
			return fmt.Errorf("%w: depth %d: %w", ErrResourceExhausted, len(s.path), s.opts.Ctx.Err())
		default:
		}
	}
	return nil
}

// check validates the partition (and its equitability) in invariant mode.
func (s *search) check(stage string) error {
	if !s.opts.CheckInvariants {
		return nil
	}
	if err := s.p.validate(); err != nil {
		return errors.Wrapf(ErrInvariant, "%s at depth %d path %v: %v", stage, len(s.path), s.path, err)
	}
	if err := equitable(s.p, s.adj); err != nil {
		return errors.Wrapf(ErrInvariant, "%s at depth %d path %v: %v", stage, len(s.path), s.path, err)
	}
	return nil
}

// equitable reports the first cell whose members disagree on a neighbor count.
func equitable(p *partition, adj *adjacency) error {
	n := p.order()
	counts := make(map[int]int)
	for c := 0; c < n; c += p.cellLen[c] {
		var ref map[int]int
		for k, v := range p.members(c) {
			clear(counts)
			for _, w := range adj.neighbors(v) {
				counts[p.cellOf[w]]++
			}
			if k == 0 {
				ref = make(map[int]int, len(counts))
				for key, val := range counts {
					ref[key] = val
				}
				continue
			}
			if len(ref) != len(counts) {
				return fmt.Errorf("cell %d not equitable at node %d", c, v)
			}
			for key, val := range counts {
				if ref[key] != val {
					return fmt.Errorf("cell %d not equitable at node %d (cell %d)", c, v, key)
				}
			}
		}
	}
	return nil
}

func minNode(cell []int) int {
	m := cell[0]
	for _, v := range cell[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
