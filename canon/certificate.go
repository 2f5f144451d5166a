// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// certificate.go — serialization of the graph under a discrete partition.
//
// Layout ([]uint32):
//   [0]      n, node count
//   [1]      m, edge count
//   [2:]     m pairs (i, j), i < j, in canonical position coordinates,
//            sorted lexicographically.
//
// The encoding is exact: the graph relabeled by position is recoverable from
// it, so equal certificates mean the two labelings give the same graph.
// Certificates of one graph always share n and m, so lexicographic
// comparison effectively compares edge lists.

package canon

import (
	"slices"
	"sort"
)

type certificate []uint32

// certBuilder owns the scratch needed to build certificates for one graph.
type certBuilder struct {
	adj  *adjacency
	inv  []int // node -> position for the labeling being encoded
	high []int // scratch: later positions adjacent to the current one
}

func newCertBuilder(adj *adjacency) *certBuilder {
	return &certBuilder{
		adj: adj,
		inv: make([]int, adj.order()),
	}
}

// build encodes the graph under lab (position -> node). lab must be a
// permutation of [0,n); for a search leaf it is the discrete partition's order.
// Complexity: O(n + m log Δ).
func (b *certBuilder) build(lab []int) certificate {
	n, m := b.adj.order(), b.adj.size()
	for i, v := range lab {
		b.inv[v] = i
	}

	cert := make(certificate, 0, 2+2*m)
	cert = append(cert, uint32(n), uint32(m))
	for i, v := range lab {
		b.high = b.high[:0]
		for _, w := range b.adj.neighbors(v) {
			if j := b.inv[w]; j > i {
				b.high = append(b.high, j)
			}
		}
		sort.Ints(b.high)
		for _, j := range b.high {
			cert = append(cert, uint32(i), uint32(j))
		}
	}

	return cert
}

// compare orders certificates lexicographically over their words.
func (c certificate) compare(o certificate) int {
	return slices.Compare(c, o)
}

// graph decodes the certificate back into the canonical adjacency list.
func (c certificate) graph() AdjacencyList {
	if len(c) < 2 {
		return AdjacencyList{}
	}
	n := int(c[0])
	out := make(AdjacencyList, n)
	for k := 2; k+1 < len(c); k += 2 {
		i, j := int(c[k]), int(c[k+1])
		out[i] = append(out[i], j)
		out[j] = append(out[j], i)
	}
	for i := range out {
		sort.Ints(out[i])
	}
	return out
}
