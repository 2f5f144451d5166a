// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// helpers.go — shared vertex/edge emission with uniform error context.

package builder

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

func addVertices(g *core.Graph, method string, ids []string) error {
	for _, id := range ids {
		if err := g.AddVertex(id); err != nil {
			return errors.Wrapf(err, "%s: AddVertex(%s)", method, id)
		}
	}
	return nil
}

func addEdge(g *core.Graph, method, u, v string) error {
	if err := g.AddEdge(u, v); err != nil {
		return errors.Wrapf(err, "%s: AddEdge(%s, %s)", method, u, v)
	}
	return nil
}

// addChords emits idx-pair edges over ids in slice order.
func addChords(g *core.Graph, method string, ids []string, chords []chord) error {
	for _, ch := range chords {
		if err := addEdge(g, method, ids[ch.U], ids[ch.V]); err != nil {
			return err
		}
	}
	return nil
}

func tooFew(method string, got, min int) error {
	return errors.Wrapf(ErrTooFewVertices, "%s: n=%d < min=%d", method, got, min)
}

// chord is an undirected index pair with U < V.
type chord struct{ U, V int }
