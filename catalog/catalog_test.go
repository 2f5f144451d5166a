package catalog_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphkey/builder"
	"github.com/katalvlaran/graphkey/canon"
	"github.com/katalvlaran/graphkey/catalog"
	"github.com/katalvlaran/graphkey/core"
)

type namedGraph struct {
	label string
	g     *core.Graph
}

// fourGraphs returns two isomorphic pairs: a path and a relabeled path,
// a star and a relabeled star.
func fourGraphs(t *testing.T) []namedGraph {
	t.Helper()
	mk := func(cons ...builder.Constructor) *core.Graph {
		g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(3)}, cons...)
		require.NoError(t, err)
		return g
	}
	return []namedGraph{
		{"path", mk(builder.Path(4))},
		{"star", mk(builder.Star(4))},
		{"path'", mk(builder.Path(4), builder.Permute())},
		{"star'", mk(builder.Star(4), builder.Permute())},
	}
}

func openMem(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.Open(catalog.StoreOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDedup_TwoPairsCollapse(t *testing.T) {
	sets := map[string]catalog.Set{
		"index": catalog.NewIndex(),
		"store": openMem(t),
	}
	for name, set := range sets {
		t.Run(name, func(t *testing.T) {
			var added []bool
			for _, ng := range fourGraphs(t) {
				_, ok, err := catalog.AddGraph(set, ng.g.Indexed(), ng.label)
				require.NoError(t, err)
				added = append(added, ok)
			}
			assert.Equal(t, []bool{true, true, false, false}, added)

			n, err := set.Count()
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			k, err := canon.New(fourGraphs(t)[2].g.Indexed())
			require.NoError(t, err)
			label, ok, err := set.Lookup(k)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "path", label, "first label wins")

			_, ok, err = set.Lookup(canon.Key{})
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestAddGraph_InvalidGraph(t *testing.T) {
	_, _, err := catalog.AddGraph(catalog.NewIndex(), canon.AdjacencyList{{0}}, "loop")
	assert.ErrorIs(t, err, canon.ErrInvalidGraph)
}

func TestIndex_OrderMatchesStore(t *testing.T) {
	ix := catalog.NewIndex()
	st := openMem(t)
	for n := 1; n <= 6; n++ {
		for _, c := range []builder.Constructor{builder.Path(n), builder.Complete(n)} {
			g, err := builder.BuildGraph(nil, nil, c)
			require.NoError(t, err)
			label := fmt.Sprintf("n%d", n)
			_, _, err = catalog.AddGraph(ix, g.Indexed(), label)
			require.NoError(t, err)
			_, _, err = catalog.AddGraph(st, g.Indexed(), label)
			require.NoError(t, err)
		}
	}

	var fromStore []canon.Key
	require.NoError(t, st.Each(func(k canon.Key, _ string) error {
		fromStore = append(fromStore, k)
		return nil
	}))
	keys := ix.Keys()
	assert.Equal(t, keys, fromStore)
	for i := 1; i < len(keys); i++ {
		assert.Negative(t, keys[i-1].Compare(keys[i]))
	}

	seen := 0
	ix.Each(func(canon.Key, string) bool {
		seen++
		return seen < 3
	})
	assert.Equal(t, 3, seen)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := catalog.Open(catalog.StoreOptions{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	k, added, err := catalog.AddGraph(s, canon.AdjacencyList{{1}, {0}}, "edge")
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, s.Close())

	s, err = catalog.Open(catalog.StoreOptions{Path: dir})
	require.NoError(t, err)
	defer s.Close()
	label, ok, err := s.Lookup(k)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "edge", label)
}

func TestStore_Errors(t *testing.T) {
	_, err := catalog.Open(catalog.StoreOptions{ReadOnly: true})
	assert.ErrorIs(t, err, catalog.ErrBadStore)

	s, err := catalog.Open(catalog.StoreOptions{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), catalog.ErrClosed)
	_, err = s.TryAdd(canon.Key{}, "x")
	assert.ErrorIs(t, err, catalog.ErrClosed)
	_, _, err = s.Lookup(canon.Key{})
	assert.ErrorIs(t, err, catalog.ErrClosed)
	_, err = s.Count()
	assert.ErrorIs(t, err, catalog.ErrClosed)
}

func TestStore_ConcurrentTryAdd(t *testing.T) {
	s := openMem(t)
	k, err := canon.New(canon.AdjacencyList{{1, 2}, {0, 2}, {0, 1}})
	require.NoError(t, err)

	const workers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			added, err := s.TryAdd(k, fmt.Sprint(i))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if added {
				wins++
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 1, wins)
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
