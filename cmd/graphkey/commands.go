package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphkey/canon"
	"github.com/katalvlaran/graphkey/core"
	"github.com/katalvlaran/graphkey/notation"
)

// app carries the resolved configuration shared by all subcommands.
type app struct {
	cfgPath string
	cfg     Config

	// Flag overrides, applied only when set on the command line.
	maxNodes int
	workers  int
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig()}

	root := &cobra.Command{
		Use:   "graphkey",
		Short: "Canonical, permutation-invariant keys for undirected graphs",
		Long: `graphkey labels graphs canonically: two graphs get the same key
exactly when they are isomorphic. Graphs are written as comma-separated
edge runs, e.g. "0-1-2-0, 3-4".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML config file")
	pf.IntVar(&a.maxNodes, "max-nodes", 0, "search node budget per graph (0 = unlimited)")
	pf.IntVar(&a.workers, "workers", 1, "parallel workers per graph")
	pf.DurationVar(&a.timeout, "timeout", 0, "time limit per graph (0 = none)")

	root.AddCommand(
		newKeyCmd(a),
		newOrbitsCmd(a),
		newDedupCmd(a),
		newBenchCmd(a),
	)
	return root
}

// resolve loads --config and applies explicit flag overrides.
func (a *app) resolve(cmd *cobra.Command) error {
	if a.cfgPath != "" {
		cfg, err := LoadConfig(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	flags := cmd.Flags()
	if flags.Changed("max-nodes") {
		a.cfg.Search.MaxNodes = a.maxNodes
	}
	if flags.Changed("workers") {
		a.cfg.Search.Workers = a.workers
	}
	if flags.Changed("timeout") {
		a.cfg.Search.Timeout = a.timeout
	}
	return nil
}

func (a *app) canonicalize(ctx context.Context, g canon.Graph) (*canon.Result, error) {
	opts, cancel := a.cfg.Search.options(ctx)
	defer cancel()
	return canon.Canonicalize(g, opts...)
}

// entry is one labelled graph read from the command line or a list file.
type entry struct {
	label string
	g     *core.Graph
}

// readEntries parses one graph per non-blank line; '#' starts a comment
// line. A line "name: graph" labels the graph, otherwise the label is the
// line number. A colon inside quotes does not start a label.
func readEntries(r io.Reader) ([]entry, error) {
	var out []entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label := fmt.Sprintf("line %d", lineNo)
		if i := strings.IndexByte(line, ':'); i > 0 && !strings.ContainsRune(line[:i], '"') {
			label, line = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}
		g, err := notation.Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		out = append(out, entry{label: label, g: g})
	}
	return out, sc.Err()
}

// openInput returns stdin for "" or "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
