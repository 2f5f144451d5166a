// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// impl_platonic.go — PlatonicSolid(name, withCenter) constructor.
//
// Contract:
//   • Unknown name → ErrOptionViolation.
//   • Shell vertices come from cfg.idFn(0..V-1); shell edges follow the fixed
//     order in variants_platonic.go.
//   • withCenter adds CenterVertexID with a spoke to every shell vertex.
//
// Complexity: O(V+E) with V ≤ 20, E ≤ 30.

package builder

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

// PlatonicSolid builds the chosen Platonic shell, optionally stellated with
// a hub.
func PlatonicSolid(name PlatonicName, withCenter bool) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n, ok := platonicVertexCounts[name]
		if !ok {
			return errors.Wrapf(ErrOptionViolation, "%s: unknown solid %q", MethodPlatonicSolid, name)
		}
		ids := cfg.ids(n)
		if err := addVertices(g, MethodPlatonicSolid, ids); err != nil {
			return err
		}
		if err := addChords(g, MethodPlatonicSolid, ids, platonicEdgeSets[name]); err != nil {
			return err
		}
		if !withCenter {
			return nil
		}
		if err := addVertices(g, MethodPlatonicSolid, []string{CenterVertexID}); err != nil {
			return err
		}
		for _, v := range ids {
			if err := addEdge(g, MethodPlatonicSolid, CenterVertexID, v); err != nil {
				return err
			}
		}
		return nil
	}
}
