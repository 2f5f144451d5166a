// SPDX-License-Identifier: MIT
// Fixtures for white-box tests of the canon engine.

package canon

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// fromEdges builds an AdjacencyList on n nodes from an undirected edge list.
func fromEdges(n int, edges [][2]int) AdjacencyList {
	g := make(AdjacencyList, n)
	for _, e := range edges {
		g[e[0]] = append(g[e[0]], e[1])
		g[e[1]] = append(g[e[1]], e[0])
	}
	return g
}

func pathEdges(n int) [][2]int {
	var out [][2]int
	for i := 0; i+1 < n; i++ {
		out = append(out, [2]int{i, i + 1})
	}
	return out
}

func cycleEdges(n int) [][2]int {
	return append(pathEdges(n), [2]int{n - 1, 0})
}

// randomEdges draws each pair independently with probability p.
func randomEdges(rng *rand.Rand, n int, p float64) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// relabel applies perm (old -> new) to g.
func relabel(g AdjacencyList, perm []int) AdjacencyList {
	out := make(AdjacencyList, len(g))
	for v, ns := range g {
		for _, w := range ns {
			out[perm[v]] = append(out[perm[v]], perm[w])
		}
	}
	return out
}

func mustAdjacency(t testing.TB, g Graph) *adjacency {
	t.Helper()
	adj, err := newAdjacency(g)
	require.NoError(t, err)
	return adj
}

// degreePartition returns the refined root partition of g.
func refinedRoot(t testing.TB, g Graph) (*partition, *adjacency) {
	t.Helper()
	adj := mustAdjacency(t, g)
	p := newPartition(adj.order(), adj.degree)
	newRefiner(adj).refineAll(p)
	return p, adj
}

// naiveRefine computes the coarsest equitable refinement of the degree
// coloring by plain color refinement, returned as sorted cells sorted by
// their smallest member.
func naiveRefine(adj *adjacency) [][]int {
	n := adj.order()
	color := make([]int, n)
	for v := range color {
		color[v] = adj.degree(v)
	}
	classes := countClasses(color)
	for {
		sigs := make([]string, n)
		for v := 0; v < n; v++ {
			nc := make([]int, 0, adj.degree(v))
			for _, w := range adj.neighbors(v) {
				nc = append(nc, color[w])
			}
			sort.Ints(nc)
			sig := []int{color[v], -1}
			sig = append(sig, nc...)
			sigs[v] = intsKey(sig)
		}
		ids := make(map[string]int)
		next := make([]int, n)
		for v, s := range sigs {
			id, ok := ids[s]
			if !ok {
				id = len(ids)
				ids[s] = id
			}
			next[v] = id
		}
		color = next
		if c := countClasses(color); c == classes {
			break
		} else {
			classes = c
		}
	}
	return cellsOf(color)
}

func countClasses(color []int) int {
	seen := make(map[int]bool)
	for _, c := range color {
		seen[c] = true
	}
	return len(seen)
}

func intsKey(xs []int) string {
	b := make([]byte, 0, 4*len(xs))
	for _, x := range xs {
		b = append(b, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	}
	return string(b)
}

func cellsOf(color []int) [][]int {
	byColor := make(map[int][]int)
	for v, c := range color {
		byColor[c] = append(byColor[c], v)
	}
	out := make([][]int, 0, len(byColor))
	for _, cell := range byColor {
		out = append(out, cell)
	}
	return normalizeCells(out)
}

// normalizeCells sorts each cell and orders cells by smallest member.
func normalizeCells(cells [][]int) [][]int {
	out := make([][]int, len(cells))
	for i, c := range cells {
		out[i] = append([]int(nil), c...)
		sort.Ints(out[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
