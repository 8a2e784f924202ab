package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_DefineGroupStable(t *testing.T) {
	g := NewGrid("surf1", 4, 4, 4, false)
	bit1 := g.DefineGroup("wall")
	bit2 := g.DefineGroup("inlet")
	bit3 := g.DefineGroup("wall")
	assert.NotEqual(t, bit1, bit2)
	assert.Equal(t, bit1, bit3)
}

func TestGrid_CheckUniformGroup(t *testing.T) {
	g := NewGrid("surf1", 2, 2, 2, false)
	wallBit := g.DefineGroup("wall")
	c := g.AddCell(0, 0, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	c.HasSurf = true
	c.GroupBit = wallBit
	require.NoError(t, g.CheckUniformGroup("wall"))

	c.GroupBit = 0
	err := g.CheckUniformGroup("wall")
	require.Error(t, err)
	var mismatch *GroupMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestGrid_ClearSurf(t *testing.T) {
	g := NewGrid("surf1", 1, 1, 1, false)
	c := g.AddCell(0, 0, [3]float64{}, [3]float64{1, 1, 1})
	c.HasSurf = true
	c.GroupBit = 1
	c.Type = 3
	g.ClearSurf()
	assert.False(t, g.Cells[0].HasSurf)
	assert.Zero(t, g.Cells[0].GroupBit)
	assert.Zero(t, g.Cells[0].Type)
}
