package ablate

import (
	"testing"

	"github.com/gridflow/isurf/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollaborator_StoreCornersRequiresGroup(t *testing.T) {
	c := NewCollaborator(1)
	cell := &grid.Cell{Global: 5}
	err := c.StoreCorners(cell, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.Error(t, err)

	cell.GroupBit = 1
	require.NoError(t, c.StoreCorners(cell, []float64{1, 2, 3, 4, 5, 6, 7, 8}))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, c.Corners(5))
}

func TestCollaborator_VerifyGroupDetectsDrop(t *testing.T) {
	c := NewCollaborator(1)
	cell := grid.Cell{Global: 5, GroupBit: 1}
	require.NoError(t, c.StoreCorners(&cell, []float64{0}))

	cells := []grid.Cell{cell}
	require.NoError(t, c.VerifyGroup(cells))

	cells[0].GroupBit = 0
	require.Error(t, c.VerifyGroup(cells))
}

func TestCollaborator_VerifyGroupDetectsMissingCell(t *testing.T) {
	c := NewCollaborator(1)
	cell := grid.Cell{Global: 5, GroupBit: 1}
	require.NoError(t, c.StoreCorners(&cell, []float64{0}))
	require.Error(t, c.VerifyGroup(nil))
}
