// Package builder produces deterministic fixture graphs for the canonical
// labeling pipeline: classic topologies (cycles, paths, stars, wheels,
// complete and complete bipartite graphs, grids, hypercubes, the Petersen
// graph, the Platonic solids), seeded random graphs, and random relabelings.
//
// Constructors are closures applied by BuildGraph (fresh graph) or Apply
// (existing graph):
//
//	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(7)},
//		builder.RandomRegular(12, 3), builder.Permute())
//
// Options:
//   - WithIDScheme, WithPrefixIDs, WithExcelColumnIDs, WithHexIDs choose
//     vertex names; keys produced by canon never depend on them.
//   - WithSeed / WithRand supply the RNG required by RandomSparse (0<p<1),
//     RandomRegular and Permute.
//   - WithPartitionPrefix names the sides of CompleteBipartite.
//
// Guarantees:
//   - Equal options and seed produce identical graphs.
//   - Option constructors panic on nil inputs; constructors never panic and
//     return errors wrapping the sentinels in errors.go.
package builder
