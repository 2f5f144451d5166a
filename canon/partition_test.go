// SPDX-License-Identifier: MIT

package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_InitialByColor(t *testing.T) {
	adj := mustAdjacency(t, fromEdges(5, [][2]int{{0, 1}, {0, 2}, {0, 3}, {3, 4}}))
	p := newPartition(adj.order(), adj.degree)

	// degrees: 0→3, 1→1, 2→1, 3→2, 4→1
	assert.Equal(t, [][]int{{1, 2, 4}, {3}, {0}}, p.snapshot())
	assert.Equal(t, 3, p.cellCount())
	assert.False(t, p.isDiscrete())
	assert.Equal(t, []int{0, 3, 4}, p.cellStarts())
	assert.Equal(t, 4, p.colorOf(0))
	require.NoError(t, p.validate())
}

func TestPartition_Empty(t *testing.T) {
	p := newPartition(0, func(int) int { return 0 })
	assert.True(t, p.isDiscrete())
	assert.Empty(t, p.snapshot())
	assert.NoError(t, p.validate())
}

func TestPartition_SplitOrdersByKey(t *testing.T) {
	p := newPartition(6, func(int) int { return 0 })
	key := map[int]int{0: 2, 1: 0, 2: 2, 3: 1, 4: 0, 5: 2}

	pieces := p.split(0, func(v int) int { return key[v] })
	assert.Equal(t, []int{0, 2, 3}, pieces)
	assert.Equal(t, [][]int{{1, 4}, {3}, {0, 2, 5}}, p.snapshot())
	assert.Equal(t, 2, p.mark())
	require.NoError(t, p.validate())

	assert.Nil(t, p.split(3, func(int) int { return 7 }), "uniform key must not split")
	assert.Nil(t, p.split(2, func(v int) int { return v }), "singleton cannot split")
}

func TestPartition_IndividualizeAndUndo(t *testing.T) {
	p := newPartition(5, func(v int) int { return v / 3 })
	before := p.snapshot()
	m := p.mark()

	s := p.individualize(2)
	assert.Equal(t, 0, s)
	assert.Equal(t, [][]int{{2}, {0, 1}, {3, 4}}, p.snapshot())
	assert.Equal(t, 0, p.colorOf(2))
	assert.Equal(t, 1, p.colorOf(0))
	require.NoError(t, p.validate())

	// Individualizing a singleton is a no-op.
	assert.Equal(t, 0, p.individualize(2))
	assert.Equal(t, 3, p.cellCount())

	p.split(1, func(v int) int { return -v })
	assert.Equal(t, [][]int{{2}, {1}, {0}, {3, 4}}, p.snapshot())

	p.undo(m)
	assert.Equal(t, before, p.snapshot())
	assert.Equal(t, m, p.mark())
	require.NoError(t, p.validate())
}

func TestPartition_UndoNested(t *testing.T) {
	p := newPartition(8, func(int) int { return 0 })
	m0 := p.mark()
	p.split(0, func(v int) int { return v % 2 })
	mid := p.snapshot()
	m1 := p.mark()
	p.individualize(5)
	p.split(p.colorOf(3), func(v int) int { return v })
	require.NoError(t, p.validate())

	p.undo(m1)
	assert.Equal(t, mid, p.snapshot())
	p.undo(m0)
	assert.Equal(t, [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}, p.snapshot())
	require.NoError(t, p.validate())
}

func TestPartition_CloneIsIndependent(t *testing.T) {
	p := newPartition(4, func(int) int { return 0 })
	m := p.mark()
	q := p.clone()

	q.individualize(3)
	assert.Equal(t, 1, p.cellCount())
	assert.Equal(t, 2, q.cellCount())

	q.undo(m)
	assert.Equal(t, p.snapshot(), q.snapshot())
}

func TestPartition_LabelingWhenDiscrete(t *testing.T) {
	p := newPartition(3, func(v int) int { return -v })
	assert.True(t, p.isDiscrete())
	assert.Equal(t, []int{2, 1, 0}, p.labeling())
}

func TestPartition_ValidateDetectsCorruption(t *testing.T) {
	p := newPartition(3, func(int) int { return 0 })
	p.cellOf[1] = 2
	assert.Error(t, p.validate())

	q := newPartition(3, func(int) int { return 0 })
	q.elems[0] = q.elems[1]
	assert.Error(t, q.validate())
}

func openCells(p *partition) []int {
	var out []int
	for s := p.nextOpen(0); s >= 0; s = p.nextOpen(s + 1) {
		out = append(out, s)
	}
	return out
}

func TestPartition_OpenCellsFollowEveryChange(t *testing.T) {
	p := newPartition(6, func(v int) int { return v / 3 })
	assert.Equal(t, []int{0, 3}, openCells(p))
	m := p.mark()

	p.individualize(4)
	assert.Equal(t, []int{0, 4}, openCells(p))
	p.split(0, func(v int) int { return v })
	assert.Equal(t, []int{4}, openCells(p))
	require.NoError(t, p.validate())

	p.undo(m)
	assert.Equal(t, []int{0, 3}, openCells(p))
	require.NoError(t, p.validate())

	q := p.clone()
	q.individualize(0)
	assert.Equal(t, []int{0, 3}, openCells(p))
	assert.Equal(t, []int{1, 3}, openCells(q))
}

func TestPartition_DiscretizeAndUndo(t *testing.T) {
	p := newPartition(7, func(v int) int { return -(v % 2) })
	before := p.snapshot()
	m := p.mark()

	p.discretize()
	assert.True(t, p.isDiscrete())
	assert.Empty(t, openCells(p))
	assert.Equal(t, []int{1, 3, 5, 0, 2, 4, 6}, p.labeling())
	require.NoError(t, p.validate())

	p.undo(m)
	assert.Equal(t, before, p.snapshot())
	assert.Equal(t, []int{0, 3}, openCells(p))
	require.NoError(t, p.validate())
}
