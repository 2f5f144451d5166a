// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// api.go — public surface of the builder package.
//
// Each topology is exposed as a Constructor closure; BuildGraph resolves
// options once and applies constructors in order against a fresh core.Graph.
// Constructors never panic at runtime and wrap sentinels from errors.go.

package builder

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

// Constructor mutates g according to one topology recipe.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a graph with gopts, resolves bopts, and applies every
// constructor in order. The first failure aborts the build.
//
// Complexity: O(len(bopts)) plus the sum of the constructors' costs.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, c := range cons {
		if c == nil {
			return nil, errors.Wrapf(ErrConstructFailed, "BuildGraph: constructor %d is nil", i)
		}
		if err := c(g, cfg); err != nil {
			return nil, errors.WithMessage(err, "BuildGraph")
		}
	}

	return g, nil
}

// Apply runs the constructors against an existing graph. Vertices already
// present are reused; edges that would duplicate existing ones fail with the
// core error unless g permits multi-edges.
func Apply(g *core.Graph, bopts []BuilderOption, cons ...Constructor) error {
	if g == nil {
		return errors.Wrap(ErrConstructFailed, "Apply: nil graph")
	}
	cfg := newBuilderConfig(bopts...)
	for i, c := range cons {
		if c == nil {
			return errors.Wrapf(ErrConstructFailed, "Apply: constructor %d is nil", i)
		}
		if err := c(g, cfg); err != nil {
			return errors.WithMessage(err, "Apply")
		}
	}

	return nil
}
