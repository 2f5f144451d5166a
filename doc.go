// Package graphkey computes canonical keys for finite simple graphs.
//
// Two graphs receive the same key exactly when they are isomorphic, so a
// key can stand in for a graph's isomorphism class: compare keys with ==,
// hash them, or store them in an index.
//
// The key is found by individualization-refinement. Equitable partition
// refinement narrows each vertex down to a class of look-alikes, and a
// depth-first search over individualized vertices picks the smallest
// certificate among all leaves. Automorphisms found along the way prune
// branches that can only repeat earlier work.
//
// Layout:
//
//	core/     — thread-safe undirected Graph and its dense IndexedView
//	canon/    — partition, refiner, search tree, Key and Canonicalize
//	builder/  — deterministic and seeded graph families
//	notation/ — the "a-b-c, d" text form of a graph
//	bfs/      — breadth-first search and connected components
//	catalog/  — in-memory and badger-backed sets of isomorphism classes
//	cmd/graphkey — CLI: key, orbits, dedup, bench
//
// Quick example:
//
//	    A───B      0───1
//	    │   │  ≅   │   │
//	    D───C      3───2
//
//	k1, _ := canon.New(notation.MustParse("A-B-C-D-A").Indexed())
//	k2, _ := canon.New(notation.MustParse("0-1, 1-2, 2-3, 3-0").Indexed())
//	k1 == k2 // true
package graphkey
