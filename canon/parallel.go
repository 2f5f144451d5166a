// SPDX-License-Identifier: MIT
// Package: graphkey/canon
//
// parallel.go — parallel exploration of the root's children.
//
// Model:
//   • The root is refined once. Its target cell's members are handed out in
//     increasing NodeId order to a fixed pool of workers (errgroup).
//   • Each worker explores one root child at a time on a private partition
//     copy with its own refiner and certificate scratch.
//   • Workers share the generator tracker, the node budget and the running
//     minimum leaf. A root child whose orbit under all generators found so far
//     holds a smaller child is skipped: the smaller child was already handed out.
//
// Determinism:
//   • The key is the minimum certificate over all leaves reachable under safe
//     pruning, which does not depend on the order discoveries are made in. The
//     labeling and the set of generators may differ between runs.

package canon

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// runParallel explores the root's children with the given number of workers.
func (s *search) runParallel(workers int) error {
	if err := s.refineRoot(); err != nil {
		return err
	}
	if s.p.isDiscrete() || s.symmetric() {
		return s.explore()
	}

	t := s.target()
	cands := append([]int(nil), s.p.members(t)...)
	sort.Ints(cands)
	root := &frame{depth: 0, target: t, mark: s.p.mark()}

	var (
		mu   sync.Mutex
		next int
	)
	take := func() (int, bool) {
		mu.Lock()
		defer mu.Unlock()
		for next < len(cands) {
			w := cands[next]
			next++
			if s.track.rootMin(w) < w {
				s.stats.Pruned++
				continue
			}
			return w, true
		}
		return 0, false
	}

	g, ctx := errgroup.WithContext(s.opts.Ctx)
	opts := s.opts
	opts.Ctx = ctx

	for i := 0; i < workers && i < len(cands); i++ {
		g.Go(func() error {
			for {
				w, ok := take()
				if !ok {
					return nil
				}

				x := s.fork(opts)
				f := *root
				if err := x.advance(&f, w); err != nil {
					return err
				}
				err := x.explore()

				x.stats.Splits += x.ref.splits
				mu.Lock()
				s.stats.add(x.stats)
				mu.Unlock()
				if err != nil {
					return err
				}
			}
		})
	}

	return g.Wait()
}
