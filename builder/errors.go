// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with errors.Wrapf, preserving the sentinel.
//   • Validation order: size, then probability, then RNG presence, and
//     ErrConstructFailed only after retries are exhausted.

package builder

import "github.com/pkg/errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols, degree)
// is outside the allowed domain for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates the builder exhausted its bounded attempts,
// or was handed a nil graph or constructor.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrOptionViolation indicates an unknown enum value such as a PlatonicName.
var ErrOptionViolation = errors.New("builder: invalid option value")
