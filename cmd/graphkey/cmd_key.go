package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphkey/bfs"
	"github.com/katalvlaran/graphkey/core"
	"github.com/katalvlaran/graphkey/notation"
)

func newKeyCmd(a *app) *cobra.Command {
	var (
		canonical  bool
		stats      bool
		components bool
	)
	cmd := &cobra.Command{
		Use:   "key GRAPH...",
		Short: "Print the canonical key of each graph",
		Long: `Print one line per graph: the key in base32, its 64-bit hash, and the
node and edge counts. --canonical adds the canonical representative in
notation form, with nodes named by canonical position. --components adds
one indented line per connected component with that component's key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range args {
				g, err := notation.Parse(s)
				if err != nil {
					return err
				}
				res, err := a.canonicalize(cmd.Context(), g.Indexed())
				if err != nil {
					return errors.Wrapf(err, "%q", s)
				}
				k := res.Key
				fmt.Fprintf(out, "%s\t%016x\tn=%d m=%d\n", k, k.Hash(), k.Order(), k.Size())
				if canonical {
					cg, err := canonicalGraph(k.Edges(), k.Order())
					if err != nil {
						return errors.Wrapf(err, "%q", s)
					}
					fmt.Fprintf(out, "\t%s\n", notation.Format(cg))
				}
				if stats {
					st := res.Stats
					fmt.Fprintf(out, "\tcomponents=%d nodes=%d leaves=%d collapsed=%d pruned=%d jumps=%d generators=%d depth=%d splits=%d\n",
						st.Components, st.Nodes, st.Leaves, st.Collapsed, st.Pruned, st.Jumps, st.Generators, st.MaxDepth, st.Splits)
				}
				if components {
					if err = a.printComponents(cmd, g); err != nil {
						return errors.Wrapf(err, "%q", s)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "also print the canonical graph")
	cmd.Flags().BoolVar(&stats, "stats", false, "also print search statistics")
	cmd.Flags().BoolVar(&components, "components", false, "also print a key per connected component")
	return cmd
}

// printComponents keys each connected component of g on its own line.
func (a *app) printComponents(cmd *cobra.Command, g *core.Graph) error {
	comps, err := bfs.Components(g, bfs.WithContext(cmd.Context()))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, comp := range comps {
		keep := make(map[string]bool, len(comp))
		for _, id := range comp {
			keep[id] = true
		}
		res, err := a.canonicalize(cmd.Context(), core.InducedSubgraph(g, keep).Indexed())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\tcomponent %s\t{%s}\n", res.Key, strings.Join(comp, " "))
	}
	return nil
}

// canonicalGraph names canonical positions by their decimal index.
func canonicalGraph(edges [][2]int, n int) (*core.Graph, error) {
	g := core.NewGraph()
	for v := 0; v < n; v++ {
		if err := g.AddVertex(fmt.Sprint(v)); err != nil {
			return nil, errors.Wrapf(err, "position %d", v)
		}
	}
	for _, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, errors.Errorf("edge %d-%d: position out of range [0,%d)", e[0], e[1], n)
		}
		if err := g.AddEdge(fmt.Sprint(e[0]), fmt.Sprint(e[1])); err != nil {
			return nil, errors.Wrapf(err, "edge %d-%d", e[0], e[1])
		}
	}
	return g, nil
}

func newOrbitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orbits GRAPH",
		Short: "Print the automorphism orbits and generators of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := notation.Parse(args[0])
			if err != nil {
				return err
			}
			view := g.Indexed()
			res, err := a.canonicalize(cmd.Context(), view)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := func(vs []int) string {
				ids := make([]string, len(vs))
				for i, v := range vs {
					ids[i] = view.ID(v)
				}
				return strings.Join(ids, " ")
			}
			for _, o := range res.Orbits() {
				fmt.Fprintf(out, "orbit {%s}\n", names(o))
			}
			for _, gen := range res.Generators {
				var cycles []string
				for _, c := range gen.Cycles() {
					cycles = append(cycles, "("+names(c)+")")
				}
				fmt.Fprintf(out, "generator %s\n", strings.Join(cycles, ""))
			}
			return nil
		},
	}
}
