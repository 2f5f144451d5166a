// SPDX-License-Identifier: MIT
// Package canon_test holds graph fixtures shared by the black-box tests.

package canon_test

import (
	"math/rand"

	"github.com/katalvlaran/graphkey/canon"
)

func edgesGraph(n int, edges ...[2]int) canon.AdjacencyList {
	g := make(canon.AdjacencyList, n)
	for _, e := range edges {
		g[e[0]] = append(g[e[0]], e[1])
		g[e[1]] = append(g[e[1]], e[0])
	}
	return g
}

func pathGraph(n int) canon.AdjacencyList {
	g := make(canon.AdjacencyList, n)
	for i := 0; i+1 < n; i++ {
		g[i] = append(g[i], i+1)
		g[i+1] = append(g[i+1], i)
	}
	return g
}

func cycleGraph(n int) canon.AdjacencyList {
	g := pathGraph(n)
	g[0] = append(g[0], n-1)
	g[n-1] = append(g[n-1], 0)
	return g
}

func starGraph(leaves int) canon.AdjacencyList {
	g := make(canon.AdjacencyList, leaves+1)
	for i := 1; i <= leaves; i++ {
		g[0] = append(g[0], i)
		g[i] = append(g[i], 0)
	}
	return g
}

func completeGraph(n int) canon.AdjacencyList {
	g := make(canon.AdjacencyList, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				g[i] = append(g[i], j)
			}
		}
	}
	return g
}

func gridGraph(rows, cols int) canon.AdjacencyList {
	g := make(canon.AdjacencyList, rows*cols)
	id := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				g[id(r, c)] = append(g[id(r, c)], id(r, c+1))
				g[id(r, c+1)] = append(g[id(r, c+1)], id(r, c))
			}
			if r+1 < rows {
				g[id(r, c)] = append(g[id(r, c)], id(r+1, c))
				g[id(r+1, c)] = append(g[id(r+1, c)], id(r, c))
			}
		}
	}
	return g
}

// hypercube returns Q_d: nodes are d-bit words, adjacent when one bit differs.
func hypercube(d int) canon.AdjacencyList {
	n := 1 << d
	g := make(canon.AdjacencyList, n)
	for v := 0; v < n; v++ {
		for b := 0; b < d; b++ {
			g[v] = append(g[v], v^(1<<b))
		}
	}
	return g
}

func petersen() canon.AdjacencyList {
	var edges [][2]int
	for i := 0; i < 5; i++ {
		edges = append(edges,
			[2]int{i, (i + 1) % 5},       // outer cycle
			[2]int{i, i + 5},             // spokes
			[2]int{5 + i, 5 + (i+2)%5},   // inner pentagram
		)
	}
	return edgesGraph(10, edges...)
}

// paley returns the Paley graph on a prime q ≡ 1 (mod 4): a strongly regular
// graph where i~j iff i-j is a non-zero square mod q.
func paley(q int) canon.AdjacencyList {
	square := make([]bool, q)
	for x := 1; x < q; x++ {
		square[x*x%q] = true
	}
	g := make(canon.AdjacencyList, q)
	for i := 0; i < q; i++ {
		for j := 0; j < q; j++ {
			if i != j && square[((i-j)%q+q)%q] {
				g[i] = append(g[i], j)
			}
		}
	}
	return g
}

func disjointUnion(gs ...canon.AdjacencyList) canon.AdjacencyList {
	var out canon.AdjacencyList
	for _, g := range gs {
		off := len(out)
		for _, ns := range g {
			row := make([]int, len(ns))
			for i, w := range ns {
				row[i] = w + off
			}
			out = append(out, row)
		}
	}
	return out
}

func randomGraph(rng *rand.Rand, n int, p float64) canon.AdjacencyList {
	g := make(canon.AdjacencyList, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				g[i] = append(g[i], j)
				g[j] = append(g[j], i)
			}
		}
	}
	return g
}

// permute relabels g by perm (old -> new) and shuffles every neighbor list.
func permute(rng *rand.Rand, g canon.AdjacencyList, perm []int) canon.AdjacencyList {
	out := make(canon.AdjacencyList, len(g))
	for v, ns := range g {
		row := make([]int, len(ns))
		for i, w := range ns {
			row[i] = perm[w]
		}
		rng.Shuffle(len(row), func(i, j int) { row[i], row[j] = row[j], row[i] })
		out[perm[v]] = row
	}
	return out
}

// allGraphs enumerates every labeled simple graph on n nodes.
func allGraphs(n int) []canon.AdjacencyList {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	out := make([]canon.AdjacencyList, 0, 1<<len(pairs))
	for mask := 0; mask < 1<<len(pairs); mask++ {
		var edges [][2]int
		for k, e := range pairs {
			if mask&(1<<k) != 0 {
				edges = append(edges, e)
			}
		}
		out = append(out, edgesGraph(n, edges...))
	}
	return out
}
