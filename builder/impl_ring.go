// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// impl_ring.go — Cycle, Path, Star and Wheel constructors.
//
// Contract:
//   • Vertices are added via cfg.idFn in ascending index order.
//   • Edges are emitted in a stable order so equal options give equal graphs.
//   • Star and Wheel use the fixed hub ID CenterVertexID.
//
// Complexity: O(n) time for each, O(n) space for the ID slice.

package builder

import (
	"github.com/katalvlaran/graphkey/core"
)

// Cycle builds C_n on idFn(0..n-1) with edges i—(i+1)%n. Requires n ≥ 3.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinCycleNodes {
			return tooFew(MethodCycle, n, MinCycleNodes)
		}
		ids := cfg.ids(n)
		if err := addVertices(g, MethodCycle, ids); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addEdge(g, MethodCycle, ids[i], ids[(i+1)%n]); err != nil {
				return err
			}
		}
		return nil
	}
}

// Path builds P_n with edges i—i+1. A single vertex is a valid path.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinPathNodes {
			return tooFew(MethodPath, n, MinPathNodes)
		}
		ids := cfg.ids(n)
		if err := addVertices(g, MethodPath, ids); err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err := addEdge(g, MethodPath, ids[i], ids[i+1]); err != nil {
				return err
			}
		}
		return nil
	}
}

// Star builds K_{1,n-1}: a hub plus n-1 leaves idFn(1..n-1).
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinStarNodes {
			return tooFew(MethodStar, n, MinStarNodes)
		}
		if err := addVertices(g, MethodStar, []string{CenterVertexID}); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := addEdge(g, MethodStar, CenterVertexID, cfg.idFn(i)); err != nil {
				return err
			}
		}
		return nil
	}
}

// Wheel builds W_n: a cycle on idFn(1..n-1) plus a hub joined to every rim
// vertex. Requires n ≥ 4.
func Wheel(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinWheelNodes {
			return tooFew(MethodWheel, n, MinWheelNodes)
		}
		rim := make([]string, n-1)
		for i := range rim {
			rim[i] = cfg.idFn(i + 1)
		}
		if err := addVertices(g, MethodWheel, append([]string{CenterVertexID}, rim...)); err != nil {
			return err
		}
		for i := range rim {
			if err := addEdge(g, MethodWheel, rim[i], rim[(i+1)%len(rim)]); err != nil {
				return err
			}
		}
		for _, v := range rim {
			if err := addEdge(g, MethodWheel, CenterVertexID, v); err != nil {
				return err
			}
		}
		return nil
	}
}
