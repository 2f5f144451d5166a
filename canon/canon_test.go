// SPDX-License-Identifier: MIT

package canon_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkey/canon"
)

func mustKey(t testing.TB, g canon.Graph, opts ...canon.Option) canon.Key {
	t.Helper()
	k, err := canon.New(g, opts...)
	require.NoError(t, err)
	return k
}

func TestNew_CycleUnderPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := cycleGraph(10)
	h := permute(rng, g, rng.Perm(10))

	assert.Equal(t, mustKey(t, g), mustKey(t, h))
}

func TestNew_PathVersusStar(t *testing.T) {
	p4 := pathGraph(4)
	k13 := starGraph(3)

	assert.NotEqual(t, mustKey(t, p4), mustKey(t, k13))
}

func TestNew_DeduplicatingSet(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := pathGraph(6)
	b := cycleGraph(6)

	set := make(map[canon.Key]struct{})
	for _, g := range []canon.AdjacencyList{
		a, permute(rng, a, rng.Perm(6)),
		b, permute(rng, b, rng.Perm(6)),
	} {
		set[mustKey(t, g)] = struct{}{}
	}
	assert.Len(t, set, 2)
}

func TestNew_SelfLoopRejected(t *testing.T) {
	g := edgesGraph(3, [2]int{0, 1})
	g[2] = append(g[2], 2)

	k, err := canon.New(g)
	assert.ErrorIs(t, err, canon.ErrInvalidGraph)
	assert.True(t, k.IsZero())
}

func TestNew_EmptyAndSingleNode(t *testing.T) {
	empty, err := canon.Canonicalize(canon.AdjacencyList{})
	require.NoError(t, err)
	single, err := canon.Canonicalize(make(canon.AdjacencyList, 1))
	require.NoError(t, err)

	assert.False(t, empty.Key.IsZero())
	assert.False(t, single.Key.IsZero())
	assert.NotEqual(t, empty.Key, single.Key)
	assert.Equal(t, 0, empty.Key.Order())
	assert.Equal(t, 1, single.Key.Order())

	for _, r := range []*canon.Result{empty, single} {
		assert.Equal(t, 1, r.Stats.Leaves)
		assert.Equal(t, 0, r.Stats.MaxDepth)
	}
}

func TestNew_InvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		g    canon.Graph
		want error
	}{
		{"nil", nil, canon.ErrNilGraph},
		{"parallel edge", canon.AdjacencyList{{1, 1}, {0, 0}}, canon.ErrInvalidGraph},
		{"asymmetric", canon.AdjacencyList{{1}, {}}, canon.ErrInvalidGraph},
		{"out of range", canon.AdjacencyList{{3}}, canon.ErrInvalidGraph},
		{"negative id", canon.AdjacencyList{{-1}}, canon.ErrInvalidGraph},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := canon.New(tc.g)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, canon.Validate(tc.g), tc.want)
		})
	}
	assert.NoError(t, canon.Validate(petersen()))
}

// Every isomorphism class on up to six nodes gets exactly one key.
func TestNew_CompleteOnSmallGraphs(t *testing.T) {
	want := map[int]int{1: 1, 2: 2, 3: 4, 4: 11, 5: 34, 6: 156}
	for n := 1; n <= 6; n++ {
		if n == 6 && testing.Short() {
			continue
		}
		keys := make(map[canon.Key]struct{})
		for _, g := range allGraphs(n) {
			keys[mustKey(t, g)] = struct{}{}
		}
		assert.Len(t, keys, want[n], "n=%d", n)
	}
}

func TestNew_PermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	named := map[string]canon.AdjacencyList{
		"petersen":   petersen(),
		"paley13":    paley(13),
		"paley17":    paley(17),
		"hypercube4": hypercube(4),
		"k33":        edgesGraph(6, [2]int{0, 3}, [2]int{0, 4}, [2]int{0, 5}, [2]int{1, 3}, [2]int{1, 4}, [2]int{1, 5}, [2]int{2, 3}, [2]int{2, 4}, [2]int{2, 5}),
		"grid5x5":    gridGraph(5, 5),
		"k7":         completeGraph(7),
		"edgeless":   make(canon.AdjacencyList, 12),
		"cycles":     disjointUnion(cycleGraph(4), cycleGraph(5), cycleGraph(4)),
	}
	for i := 0; i < 30; i++ {
		n := 2 + rng.Intn(40)
		named["random"+string(rune('a'+i))] = randomGraph(rng, n, rng.Float64()*0.5)
	}

	for name, g := range named {
		t.Run(name, func(t *testing.T) {
			want := mustKey(t, g)
			for trial := 0; trial < 4; trial++ {
				h := permute(rng, g, rng.Perm(len(g)))
				got := mustKey(t, h, canon.WithInvariantChecks(true))
				require.Equal(t, want, got, "trial %d", trial)
				assert.Equal(t, want.Hash(), got.Hash())
			}
		})
	}
}

// Pairs that color refinement alone cannot tell apart.
func TestNew_DistinguishesRefinementTwins(t *testing.T) {
	prism := edgesGraph(6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3},
		[2]int{0, 3}, [2]int{1, 4}, [2]int{2, 5})
	k33 := edgesGraph(6, [2]int{0, 3}, [2]int{0, 4}, [2]int{0, 5}, [2]int{1, 3}, [2]int{1, 4}, [2]int{1, 5}, [2]int{2, 3}, [2]int{2, 4}, [2]int{2, 5})

	pairs := [][2]canon.AdjacencyList{
		{cycleGraph(6), disjointUnion(cycleGraph(3), cycleGraph(3))},
		{prism, k33},
		{cycleGraph(9), disjointUnion(cycleGraph(4), cycleGraph(5))},
		{hypercube(3), disjointUnion(completeGraph(4), completeGraph(4))},
	}
	for i, pr := range pairs {
		assert.NotEqual(t, mustKey(t, pr[0]), mustKey(t, pr[1]), "pair %d", i)
	}
}

func TestCanonicalize_LabelingRealizesKey(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		g := randomGraph(rng, 1+rng.Intn(30), 0.25)
		res, err := canon.Canonicalize(g)
		require.NoError(t, err)

		// Relabel by the canonical labeling and compare with the key's graph.
		want := res.CanonicalGraph()
		require.Len(t, want, len(g))
		for v, ns := range g {
			for _, w := range ns {
				assert.Contains(t, want[res.Labeling[v]], res.Labeling[w])
			}
			assert.Len(t, want[res.Labeling[v]], len(ns))
		}
		assert.Equal(t, res.Key.Graph(), want)
	}
}

func TestCanonicalize_GeneratorsAndOrbits(t *testing.T) {
	res, err := canon.Canonicalize(starGraph(4))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1, 2, 3, 4}}, res.Orbits())

	res, err = canon.Canonicalize(cycleGraph(7))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3, 4, 5, 6}}, res.Orbits())
	assert.Equal(t, len(res.Generators), res.Stats.Generators)

	g := petersen()
	res, err = canon.Canonicalize(g)
	require.NoError(t, err)
	for _, a := range res.Generators {
		assert.False(t, a.IsIdentity())
		perm := a.Permutation(len(g))
		for v, ns := range g {
			for _, w := range ns {
				assert.Contains(t, g[perm[v]], perm[w])
			}
		}
	}
	assert.Len(t, res.Orbits(), 1)

	// A rigid graph has no automorphisms to find.
	res, err = canon.Canonicalize(edgesGraph(6, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4}, [2]int{5, 1}, [2]int{5, 2}))
	require.NoError(t, err)
	for _, o := range res.Orbits() {
		assert.Len(t, o, 1)
	}
}

func TestCanonicalize_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	graphs := []canon.AdjacencyList{
		petersen(), paley(13), hypercube(4), gridGraph(4, 6),
		make(canon.AdjacencyList, 7), canon.AdjacencyList{},
		disjointUnion(cycleGraph(5), cycleGraph(5), starGraph(3)),
	}
	for i := 0; i < 20; i++ {
		graphs = append(graphs, randomGraph(rng, 2+rng.Intn(35), 0.2))
	}

	for i, g := range graphs {
		seq := mustKey(t, g)
		for _, workers := range []int{2, 4, 8} {
			par := mustKey(t, g, canon.WithParallelism(workers), canon.WithInvariantChecks(true))
			assert.Equal(t, seq, par, "graph %d workers %d", i, workers)
		}
	}
}

func TestCanonicalize_NodeBudget(t *testing.T) {
	g := paley(17)

	res, err := canon.Canonicalize(g, canon.WithMaxNodes(2))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, canon.ErrResourceExhausted)

	_, err = canon.New(g, canon.WithMaxNodes(2), canon.WithParallelism(3))
	assert.ErrorIs(t, err, canon.ErrResourceExhausted)

	// Relaxing the bound is a valid retry.
	_, err = canon.New(g, canon.WithMaxNodes(1_000_000))
	assert.NoError(t, err)
}

func TestCanonicalize_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := canon.New(petersen(), canon.WithContext(ctx))
	assert.ErrorIs(t, err, canon.ErrResourceExhausted)
	assert.True(t, errors.Is(err, context.Canceled))

	ctx, cancel = context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	_, err = canon.New(petersen(), canon.WithContext(ctx), canon.WithParallelism(2))
	assert.ErrorIs(t, err, canon.ErrResourceExhausted)
}

// Large sparse inputs stay within reach: the search depth is tiny even
// though n is in the tens of thousands.
func TestNew_LargeGraphs(t *testing.T) {
	if testing.Short() {
		t.Skip("large graphs")
	}
	rng := rand.New(rand.NewSource(5))
	for _, g := range []canon.AdjacencyList{cycleGraph(20000), gridGraph(100, 100)} {
		want := mustKey(t, g)
		got := mustKey(t, permute(rng, g, rng.Perm(len(g))))
		assert.Equal(t, want, got)
		assert.Equal(t, len(g), got.Order())
	}
}

func repeatGraph(g canon.AdjacencyList, times int) canon.AdjacencyList {
	gs := make([]canon.AdjacencyList, times)
	for i := range gs {
		gs[i] = g
	}
	return disjointUnion(gs...)
}

// Huge automorphism groups must not blow up the search: a star collapses at
// the root and a union of small twins is keyed one component at a time.
func TestNew_LargeSymmetricGraphs(t *testing.T) {
	if testing.Short() {
		t.Skip("large graphs")
	}
	rng := rand.New(rand.NewSource(11))
	cases := []struct {
		name   string
		g      canon.AdjacencyList
		orbits int
	}{
		{"star10000", starGraph(10000), 2},
		{"matching10000", repeatGraph(completeGraph(2), 10000), 1},
		{"triangles5000", repeatGraph(completeGraph(3), 5000), 1},
		{"triangles+cycle", disjointUnion(repeatGraph(completeGraph(3), 5000), cycleGraph(15000)), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := canon.Canonicalize(tc.g)
			require.NoError(t, err)
			assert.Less(t, res.Stats.Nodes, 2*len(tc.g))
			assert.Len(t, res.Orbits(), tc.orbits)

			got := mustKey(t, permute(rng, tc.g, rng.Perm(len(tc.g))))
			assert.Equal(t, res.Key, got)
			assert.Equal(t, len(tc.g), got.Order())
		})
	}
}

func TestCanonicalize_Disconnected(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	g := disjointUnion(cycleGraph(5), starGraph(3), cycleGraph(5), make(canon.AdjacencyList, 2), pathGraph(3))

	res, err := canon.Canonicalize(g, canon.WithInvariantChecks(true))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Stats.Components)
	assert.Equal(t, len(res.Generators), res.Stats.Generators)

	// The labeling realizes the key.
	want := res.CanonicalGraph()
	for v, ns := range g {
		assert.Len(t, want[res.Labeling[v]], len(ns))
		for _, w := range ns {
			assert.Contains(t, want[res.Labeling[v]], res.Labeling[w])
		}
	}

	// Generators are automorphisms; twin components share an orbit.
	for _, a := range res.Generators {
		perm := a.Permutation(len(g))
		for v, ns := range g {
			for _, w := range ns {
				assert.Contains(t, g[perm[v]], perm[w])
			}
		}
	}
	orbits := res.Orbits()
	assert.Contains(t, orbits, []int{0, 1, 2, 3, 4, 9, 10, 11, 12, 13})
	assert.Contains(t, orbits, []int{14, 15})

	for _, workers := range []int{1, 3} {
		h := permute(rng, g, rng.Perm(len(g)))
		assert.Equal(t, res.Key, mustKey(t, h, canon.WithParallelism(workers)))
	}

	// Disconnected and connected graphs of one size stay apart.
	assert.NotEqual(t, mustKey(t, cycleGraph(6)), mustKey(t, repeatGraph(cycleGraph(3), 2)))
}
