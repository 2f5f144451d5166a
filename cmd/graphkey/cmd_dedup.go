package main

import (
	"fmt"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphkey/canon"
	"github.com/katalvlaran/graphkey/catalog"
)

func newDedupCmd(a *app) *cobra.Command {
	var (
		catalogPath string
		list        bool
	)
	cmd := &cobra.Command{
		Use:   "dedup [FILE]",
		Short: "Group a list of graphs into isomorphism classes",
		Long: `Read one graph per line (FILE or stdin, "name: graph" to label) and
report, per line, whether its class was new or already seen. With --catalog
the classes persist in a badger database and later runs dedup against them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			in, err := openInput(path)
			if err != nil {
				return err
			}
			entries, err := readEntries(in)
			in.Close()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("catalog") {
				a.cfg.Catalog.Path = catalogPath
			}
			set, closeSet, err := a.openSet()
			if err != nil {
				return err
			}
			defer closeSet()

			out := cmd.OutOrStdout()
			fresh := 0
			for _, e := range entries {
				res, err := a.canonicalize(cmd.Context(), e.g.Indexed())
				if err != nil {
					return err
				}
				added, err := set.TryAdd(res.Key, e.label)
				if err != nil {
					return err
				}
				if added {
					fresh++
					fmt.Fprintf(out, "new\t%s\t%s\n", e.label, res.Key)
					continue
				}
				first, _, err := set.Lookup(res.Key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "dup\t%s\tsame as %s\n", e.label, first)
			}

			total, err := set.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d graphs, %d new classes, %d classes total\n", len(entries), fresh, total)

			if !list {
				return nil
			}
			switch c := set.(type) {
			case *catalog.Index:
				c.Each(func(k canon.Key, label string) bool {
					fmt.Fprintf(out, "%s\t%s\n", k, label)
					return true
				})
			case *catalog.Store:
				return c.Each(func(k canon.Key, label string) error {
					_, err := fmt.Fprintf(out, "%s\t%s\n", k, label)
					return err
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "badger directory for persistent classes")
	cmd.Flags().BoolVar(&list, "list", false, "list all classes in key order afterwards")
	return cmd
}

// openSet returns the configured Set and its release function.
func (a *app) openSet() (catalog.Set, func(), error) {
	if a.cfg.Catalog.Path == "" {
		return catalog.NewIndex(), func() {}, nil
	}
	st, err := catalog.Open(catalog.StoreOptions{
		Path:       a.cfg.Catalog.Path,
		SyncWrites: a.cfg.Catalog.SyncWrites,
	})
	if err != nil {
		return nil, nil, err
	}
	return st, func() {
		if err := st.Close(); err != nil {
			klog.Warningf("closing catalog: %v", err)
		}
	}, nil
}
