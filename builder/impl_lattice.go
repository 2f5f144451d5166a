// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// impl_lattice.go — Grid, Hypercube and Petersen constructors.
//
// Grid uses the fixed coordinate scheme "r,c" rather than cfg.idFn so that
// fixtures stay readable. Hypercube and Petersen go through cfg.idFn.

package builder

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

const gridIDFmt = "%d,%d"

// Grid builds a rows×cols orthogonal lattice with 4-neighbourhood.
// Vertices are added row-major; each cell emits its right then bottom edge.
//
// Complexity: O(rows·cols).
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if rows < MinGridDim || cols < MinGridDim {
			return errors.Wrapf(ErrTooFewVertices, "%s: rows=%d, cols=%d (each must be ≥ %d)",
				MethodGrid, rows, cols, MinGridDim)
		}
		id := func(r, c int) string { return fmt.Sprintf(gridIDFmt, r, c) }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if err := addVertices(g, MethodGrid, []string{id(r, c)}); err != nil {
					return err
				}
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := addEdge(g, MethodGrid, id(r, c), id(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := addEdge(g, MethodGrid, id(r, c), id(r+1, c)); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
}

// Hypercube builds Q_d: 2^d vertices, i—j whenever i and j differ in one bit.
// d is capped at MaxHypercubeDim.
//
// Complexity: O(d·2^d).
func Hypercube(d int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if d < MinHypercubeDim || d > MaxHypercubeDim {
			return errors.Wrapf(ErrTooFewVertices, "%s: d=%d not in [%d,%d]",
				MethodHypercube, d, MinHypercubeDim, MaxHypercubeDim)
		}
		n := 1 << d
		ids := cfg.ids(n)
		if err := addVertices(g, MethodHypercube, ids); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for b := 0; b < d; b++ {
				if j := i ^ (1 << b); i < j {
					if err := addEdge(g, MethodHypercube, ids[i], ids[j]); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
}

// petersenChords: outer 5-cycle 0..4, spokes i—i+5, inner pentagram 5..9.
var petersenChords = []chord{
	{0, 1}, {1, 2}, {2, 3}, {3, 4}, {0, 4},
	{0, 5}, {1, 6}, {2, 7}, {3, 8}, {4, 9},
	{5, 7}, {7, 9}, {6, 9}, {6, 8}, {5, 8},
}

// Petersen builds the Petersen graph on idFn(0..9).
func Petersen() Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		ids := cfg.ids(10)
		if err := addVertices(g, MethodPetersen, ids); err != nil {
			return err
		}
		return addChords(g, MethodPetersen, ids, petersenChords)
	}
}
