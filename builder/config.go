// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn        = DefaultIDFn  ("0","1","2",...)
//   • rng         = nil          (pure unless seeded)
//   • left/right  = "L" / "R"

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	idFn IDFn
	rng  *rand.Rand

	// Bipartite ID prefixes. Empty resolves to the defaults below.
	leftPrefix  string
	rightPrefix string
}

const (
	defaultLeftPrefix  = "L"
	defaultRightPrefix = "R"
)

// newBuilderConfig applies opts over the defaults, last wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:        DefaultIDFn,
		leftPrefix:  defaultLeftPrefix,
		rightPrefix: defaultRightPrefix,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.leftPrefix == "" {
		cfg.leftPrefix = defaultLeftPrefix
	}
	if cfg.rightPrefix == "" {
		cfg.rightPrefix = defaultRightPrefix
	}

	return cfg
}

// ids materializes idFn(0..n-1).
func (c builderConfig) ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = c.idFn(i)
	}
	return out
}
