// SPDX-License-Identifier: MIT
// Package: graphkey/builder
//
// constants.go — method tags and domain minima shared by constructors.

package builder

// Method tags prefix wrapped errors.
const (
	MethodCycle             = "Cycle"
	MethodPath              = "Path"
	MethodStar              = "Star"
	MethodWheel             = "Wheel"
	MethodComplete          = "Complete"
	MethodCompleteBipartite = "CompleteBipartite"
	MethodGrid              = "Grid"
	MethodHypercube         = "Hypercube"
	MethodPetersen          = "Petersen"
	MethodPlatonicSolid     = "PlatonicSolid"
	MethodRandomSparse      = "RandomSparse"
	MethodRandomRegular     = "RandomRegular"
	MethodPermute           = "Permute"
)

// CenterVertexID is the hub of Star, Wheel, and stellated Platonic solids.
const CenterVertexID = "Center"

// Minimum sizes. A cycle needs 3 nodes to avoid loops or parallel edges,
// a star needs one leaf, and a wheel is a 3-cycle plus its hub.
const (
	MinCycleNodes     = 3
	MinPathNodes      = 1
	MinStarNodes      = 2
	MinWheelNodes     = 4
	MinGridDim        = 1
	MinCompleteNodes  = 1
	MinPartitionSize  = 1
	MinHypercubeDim   = 0
	MaxHypercubeDim   = 20
	MinRandomVertices = 1
)

// maxStubMatchingAttempts bounds RandomRegular reshuffles.
const maxStubMatchingAttempts = 64
