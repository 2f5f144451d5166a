// SPDX-License-Identifier: MIT
// Package: graphkey/notation
//
// notation.go — a compact text form for undirected graphs.
//
// Grammar:
//
//	graph  := ( run ( "," run )* )?
//	run    := vertex ( "-" vertex )*
//	vertex := Ident | Int | String
//
// A run "a-b-c" contributes the edges a—b and b—c; a run of one vertex
// declares an isolated vertex. Runs may repeat vertices, so "0-1-2-0" is a
// triangle. Quoted vertices carry IDs that are not identifiers or integers.

package notation

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/katalvlaran/graphkey/core"
)

// ErrSyntax wraps every parse failure.
var ErrSyntax = errors.New("notation: syntax error")

type graphExpr struct {
	Runs []*edgeRun `parser:"( @@ ( \",\" @@ )* )?"`
}

type edgeRun struct {
	Start *vertex   `parser:"@@"`
	Next  []*vertex `parser:"( \"-\" @@ )*"`
}

type vertex struct {
	ID string `parser:"@( Ident | Int | String )"`
}

var parseGraphExpr = participle.MustBuild[graphExpr](participle.Unquote("String"))

// Parse reads s into a new graph built with opts. Duplicate edges and loops
// are rejected by core unless opts allow them.
func Parse(s string, opts ...core.GraphOption) (*core.Graph, error) {
	expr, err := parseGraphExpr.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(ErrSyntax, err.Error())
	}

	g := core.NewGraph(opts...)
	for ri, run := range expr.Runs {
		cur := run.Start.ID
		if err = g.AddVertex(cur); err != nil {
			return nil, errors.Wrapf(err, "run #%d", ri+1)
		}
		for _, nxt := range run.Next {
			if err = g.AddEdge(cur, nxt.ID); err != nil {
				return nil, errors.Wrapf(err, "run #%d: edge %s-%s", ri+1, cur, nxt.ID)
			}
			cur = nxt.ID
		}
	}

	return g, nil
}

// MustParse is Parse for fixtures; it panics on error.
func MustParse(s string, opts ...core.GraphOption) *core.Graph {
	g, err := Parse(s, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Format renders g as edge runs followed by isolated vertices. Runs start at
// the smallest unused edge and walk on along unused edges, smallest neighbor
// first, until none is left at the current end. Parse(Format(g)) reproduces g.
func Format(g *core.Graph) string {
	edges := g.Edges()
	left := make(map[[2]string]int, len(edges))
	nbrs := make(map[string][]string)
	for _, e := range edges {
		left[[2]string{e.From, e.To}]++
		nbrs[e.From] = append(nbrs[e.From], e.To)
		if e.From != e.To {
			nbrs[e.To] = append(nbrs[e.To], e.From)
		}
	}
	for _, ns := range nbrs {
		sort.Strings(ns)
	}
	take := func(u, v string) bool {
		if v < u {
			u, v = v, u
		}
		k := [2]string{u, v}
		if left[k] == 0 {
			return false
		}
		left[k]--
		return true
	}

	var runs []string
	next := make(map[string]int)
	for _, e := range edges {
		if !take(e.From, e.To) {
			continue
		}
		run := []string{quote(e.From), quote(e.To)}
		for cur, ok := e.To, true; ok; {
			ok = false
			for ns := nbrs[cur]; next[cur] < len(ns); {
				w := ns[next[cur]]
				next[cur]++
				if take(cur, w) {
					run = append(run, quote(w))
					cur, ok = w, true
					break
				}
			}
		}
		runs = append(runs, strings.Join(run, "-"))
	}

	for _, v := range g.Vertices() {
		if len(nbrs[v]) == 0 {
			runs = append(runs, quote(v))
		}
	}
	return strings.Join(runs, ", ")
}

// quote leaves identifiers and non-negative integers bare.
func quote(id string) string {
	if bareIdent(id) || bareInt(id) {
		return id
	}
	return strconv.Quote(id)
}

func bareIdent(s string) bool {
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return s != ""
}

func bareInt(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
