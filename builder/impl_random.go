// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// impl_random.go — RandomSparse, RandomRegular and Permute constructors.
//
// Determinism:
//   • Every random choice draws from cfg.rng in a fixed order, so a fixed
//     seed reproduces the same graph.
//   • cfg.rng is mandatory whenever an outcome is actually random.

package builder

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

// RandomSparse samples G(n, p): each unordered pair {i,j}, i<j, is included
// independently with probability p, trials in (i asc, j asc) order.
// The RNG may be omitted when p is 0 or 1.
//
// Complexity: O(n²) trials.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinRandomVertices {
			return tooFew(MethodRandomSparse, n, MinRandomVertices)
		}
		if p < 0 || p > 1 {
			return errors.Wrapf(ErrInvalidProbability, "%s: p=%.6f not in [0,1]", MethodRandomSparse, p)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return errors.Wrap(ErrNeedRandSource, MethodRandomSparse)
		}
		ids := cfg.ids(n)
		if err := addVertices(g, MethodRandomSparse, ids); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !bernoulli(cfg.rng, p) {
					continue
				}
				if err := addEdge(g, MethodRandomSparse, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func bernoulli(rng *rand.Rand, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	default:
		return rng.Float64() < p
	}
}

// RandomRegular builds a simple d-regular graph on n vertices by random
// stub pairing: each step joins two random free stubs whose vertices are
// distinct and not yet adjacent. A dead end restarts the pairing, at most
// maxStubMatchingAttempts times. Loops and parallel edges are only produced
// when g permits them.
//
// Requires 0 ≤ d < n and n·d even.
//
// Complexity: expected O(n·d) per attempt for d ≪ n.
func RandomRegular(n, d int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinRandomVertices {
			return tooFew(MethodRandomRegular, n, MinRandomVertices)
		}
		if d < 0 || d >= n {
			return errors.Wrapf(ErrTooFewVertices, "%s: degree must be in [0,%d), got %d", MethodRandomRegular, n, d)
		}
		if n*d%2 != 0 {
			return errors.Wrapf(ErrTooFewVertices, "%s: n*d must be even (n=%d, d=%d)", MethodRandomRegular, n, d)
		}
		if cfg.rng == nil {
			return errors.Wrap(ErrNeedRandSource, MethodRandomRegular)
		}
		ids := cfg.ids(n)
		if err := addVertices(g, MethodRandomRegular, ids); err != nil {
			return err
		}
		if d == 0 {
			return nil
		}

		m := stubMatcher{n: n, d: d, loops: g.Looped(), multi: g.Multigraph(), rng: cfg.rng}
		for attempt := 1; attempt <= maxStubMatchingAttempts; attempt++ {
			pairs, ok := m.pair()
			if !ok {
				continue
			}
			for _, e := range pairs {
				if err := addEdge(g, MethodRandomRegular, ids[e.U], ids[e.V]); err != nil {
					return err
				}
			}
			return nil
		}

		return errors.Wrapf(ErrConstructFailed, "%s: no pairing after %d attempts",
			MethodRandomRegular, maxStubMatchingAttempts)
	}
}

type stubMatcher struct {
	n, d         int
	loops, multi bool
	rng          *rand.Rand
}

// localTries is how many random stub pairs are drawn before an exhaustive
// scan decides whether the attempt is stuck.
const localTries = 16

// pair returns n·d/2 edges or false on a dead end.
func (m stubMatcher) pair() ([]chord, bool) {
	stubs := make([]int, 0, m.n*m.d)
	for v := 0; v < m.n; v++ {
		for k := 0; k < m.d; k++ {
			stubs = append(stubs, v)
		}
	}
	seen := make(map[chord]bool, len(stubs)/2)
	out := make([]chord, 0, len(stubs)/2)

	ok := func(a, b int) bool {
		u, v := stubs[a], stubs[b]
		if u == v && !m.loops {
			return false
		}
		return m.multi || !seen[orient(u, v)]
	}
	take := func(a, b int) {
		if a < b {
			a, b = b, a
		}
		e := orient(stubs[a], stubs[b])
		seen[e] = true
		out = append(out, e)
		last := len(stubs) - 1
		stubs[a] = stubs[last]
		stubs = stubs[:last]
		last--
		stubs[b] = stubs[last]
		stubs = stubs[:last]
	}

	for len(stubs) > 0 {
		found := false
		for t := 0; t < localTries && !found; t++ {
			a, b := m.rng.Intn(len(stubs)), m.rng.Intn(len(stubs))
			if a != b && ok(a, b) {
				take(a, b)
				found = true
			}
		}
		if found {
			continue
		}
		a, b := m.scan(stubs, ok)
		if a < 0 {
			return nil, false
		}
		take(a, b)
	}

	return out, true
}

// scan finds the first admissible stub pair or (-1, -1).
func (m stubMatcher) scan(stubs []int, ok func(a, b int) bool) (int, int) {
	for a := range stubs {
		for b := a + 1; b < len(stubs); b++ {
			if ok(a, b) {
				return a, b
			}
		}
	}
	return -1, -1
}

func orient(u, v int) chord {
	if u > v {
		u, v = v, u
	}
	return chord{U: u, V: v}
}

// Permute renames the vertices of g by a uniformly random permutation of
// its own vertex IDs. The result is isomorphic to the input by construction,
// which makes it the standard companion of invariance tests.
//
// Complexity: O(V + E).
func Permute() Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if cfg.rng == nil {
			return errors.Wrap(ErrNeedRandSource, MethodPermute)
		}
		ids := g.Vertices()
		sort.Strings(ids)
		perm := cfg.rng.Perm(len(ids))
		mapping := make(map[string]string, len(ids))
		for i, id := range ids {
			mapping[id] = ids[perm[i]]
		}

		out, err := core.Relabel(g, mapping)
		if err != nil {
			return errors.Wrap(err, MethodPermute)
		}
		g.Clear()
		if err = addVertices(g, MethodPermute, out.Vertices()); err != nil {
			return err
		}
		for _, e := range out.Edges() {
			if err = addEdge(g, MethodPermute, e.From, e.To); err != nil {
				return err
			}
		}
		return nil
	}
}
