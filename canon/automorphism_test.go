// SPDX-License-Identifier: MIT

package canon

import (
	"sync"
	"testing"

	"github.com/soniakeys/bits"
	"github.com/stretchr/testify/assert"
)

func TestAutomorphism_FromLabelings(t *testing.T) {
	// Rotation of C4: 0→1→2→3→0.
	a := newAutomorphism([]int{0, 1, 2, 3}, []int{1, 2, 3, 0})

	assert.Equal(t, 1, a.Apply(0))
	assert.Equal(t, 0, a.Apply(3))
	assert.Equal(t, 9, a.Apply(9))
	assert.Equal(t, []int{0, 1, 2, 3}, a.Support())
	assert.Equal(t, []int{1, 2, 3, 0}, a.Permutation(4))
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, a.Cycles())
	assert.False(t, a.IsIdentity())
	assert.True(t, a.preserves(mustAdjacency(t, fromEdges(4, cycleEdges(4)))))
	assert.False(t, a.preserves(mustAdjacency(t, fromEdges(4, pathEdges(4)))))
}

func TestAutomorphism_SparseAndIdentity(t *testing.T) {
	a := newAutomorphism([]int{5, 3, 1, 0}, []int{5, 1, 3, 0})
	assert.Equal(t, []int{1, 3}, a.Support())
	assert.Equal(t, [][]int{{1, 3}}, a.Cycles())

	id := newAutomorphism([]int{2, 0, 1}, []int{2, 0, 1})
	assert.True(t, id.IsIdentity())
	assert.Empty(t, id.Cycles())
}

func TestAutomorphism_FixesAll(t *testing.T) {
	a := newAutomorphism([]int{0, 1, 2, 3, 4}, []int{0, 2, 1, 3, 4})
	prefix := bits.New(5)
	prefix.SetBit(0, 1)
	prefix.SetBit(4, 1)
	assert.True(t, a.fixesAll(prefix))

	prefix.SetBit(2, 1)
	assert.False(t, a.fixesAll(prefix))
}

func TestOrbits_UnionKeepsMinimumAsRoot(t *testing.T) {
	o := newOrbits()
	o.union(7, 4)
	o.union(9, 7)
	o.union(2, 9)

	for _, v := range []int{2, 4, 7, 9} {
		assert.Equal(t, 2, o.min(v))
	}
	assert.Equal(t, 5, o.min(5))
	assert.True(t, canPrune(o, 9))
	assert.False(t, canPrune(o, 2))
	assert.False(t, canPrune(nil, 9))
}

func TestStabilizerOrbits_OnlyPrefixFixingGenerators(t *testing.T) {
	gens := []Automorphism{
		newAutomorphism([]int{0, 1}, []int{1, 0}), // moves 0
		newAutomorphism([]int{2, 3}, []int{3, 2}), // fixes 0 and 1
	}
	prefix := bits.New(4)
	prefix.SetBit(0, 1)

	o := stabilizerOrbits(gens, prefix)
	assert.Equal(t, 1, o.min(1))
	assert.Equal(t, 2, o.min(3))
}

func TestOrbitPartition(t *testing.T) {
	gens := []Automorphism{
		newAutomorphism([]int{1, 4}, []int{4, 1}),
		newAutomorphism([]int{4, 5}, []int{5, 4}),
	}
	assert.Equal(t, [][]int{{0}, {1, 4, 5}, {2}, {3}}, orbitPartition(6, gens))
	assert.Equal(t, [][]int{{0}, {1}}, orbitPartition(2, nil))
}

func TestTracker_ConcurrentRegister(t *testing.T) {
	tr := newTracker()
	var wg sync.WaitGroup
	for i := 1; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.register(newAutomorphism([]int{0, i}, []int{i, 0}))
			_ = tr.snapshot()
		}(i)
	}
	wg.Wait()

	assert.Len(t, tr.snapshot(), 49)
	for i := 0; i < 50; i++ {
		assert.Equal(t, 0, tr.rootMin(i))
	}
}
