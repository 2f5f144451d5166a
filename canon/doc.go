// Package canon computes canonical keys of undirected simple graphs: two
// graphs receive equal keys if and only if they are isomorphic.
//
// What:
//
//   - New / Canonicalize: individualization-refinement search with equitable
//     partition refinement, automorphism pruning and a total order on leaf
//     certificates. The key is the minimum certificate reached.
//   - Key: comparable value (usable as a map key), totally ordered, hashable,
//     with binary and base32 text forms.
//   - Result: canonical labeling, discovered automorphism generators, orbits
//     and search statistics.
//
// Why:
//
//   - Deduplicate graphs up to isomorphism (enumeration, catalogs, caches).
//   - Index graph collections by structure instead of by vertex naming.
//
// Input:
//
//   - Any value implementing Graph: NodeIds are [0, Order()), adjacency must
//     be symmetric with no self-loops and no repeated neighbors. The graph is
//     validated and copied once; the engine never mutates it.
//
// Determinism:
//
//   - The key depends only on the isomorphism class. Sequential and parallel
//     runs produce the same key. The labeling realizing it may differ between
//     automorphic choices.
//
// Complexity:
//
//   - Refinement: O(m log n) per search node in the usual case.
//   - Search: polynomial in practice; exponential on adversarial families.
//     Bound it with WithMaxNodes or WithContext.
//   - Memory: O(n + m) plus O(n) per live search frame.
//
// Errors:
//
//	ErrNilGraph           - a nil Graph was passed.
//	ErrInvalidGraph       - self-loop, parallel edge, bad neighbor id or asymmetric adjacency.
//	ErrResourceExhausted  - node budget spent, or the context was cancelled / timed out.
//	ErrInvariant          - internal consistency check failed (engine defect, do not retry).
//	ErrMalformedKey       - bytes or text do not decode to a key.
package canon
