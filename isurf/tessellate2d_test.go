package isurf

import (
	"testing"

	"github.com/gridflow/isurf/surf"
	"github.com/stretchr/testify/assert"
)

func unitSquare(values [4]float64) *Square {
	return &Square{
		Values: values,
		Lo:     [2]float64{0, 0},
		Hi:     [2]float64{1, 1},
		CellID: 7,
	}
}

func TestTessellate2D_AllOutsideEmitsNothing(t *testing.T) {
	store := surf.NewStore()
	sq := unitSquare([4]float64{-1, -1, -1, -1})
	n := Tessellate2D(store, sq, 1, 1)
	assert.Equal(t, 0, n)
}

func TestTessellate2D_AllInsideEmitsNothing(t *testing.T) {
	store := surf.NewStore()
	sq := unitSquare([4]float64{1, 1, 1, 1})
	n := Tessellate2D(store, sq, 1, 1)
	assert.Equal(t, 0, n)
}

func TestTessellate2D_SingleCornerEmitsOneSegment(t *testing.T) {
	store := surf.NewStore()
	sq := unitSquare([4]float64{1, -1, -1, -1})
	n := Tessellate2D(store, sq, 1, 1)
	assert.Equal(t, 1, n)
	assert.Len(t, store.Lines, 1)
}

func TestTessellate2D_SaddleCase5SplitsByAverage(t *testing.T) {
	store := surf.NewStore()
	// corners BL and TR inside, BR and TL outside: case 5's saddle.
	sq := unitSquare([4]float64{1, -1, -1, 1})
	n := Tessellate2D(store, sq, 1, 1)
	assert.Equal(t, 2, n)
	assert.Len(t, store.Lines, 2)
}

func TestTessellate2D_SaddleCase10SplitsByAverage(t *testing.T) {
	store := surf.NewStore()
	// corners BR and TL inside, BL and TR outside: case 10's saddle.
	sq := unitSquare([4]float64{-1, 1, 1, -1})
	n := Tessellate2D(store, sq, 1, 1)
	assert.Equal(t, 2, n)
	assert.Len(t, store.Lines, 2)
}

func TestTessellate2D_StampsCellAndGroup(t *testing.T) {
	store := surf.NewStore()
	sq := unitSquare([4]float64{1, -1, -1, -1})
	Tessellate2D(store, sq, 3, 9)
	for _, l := range store.Lines {
		assert.EqualValues(t, 3, l.GroupMask)
		assert.Equal(t, int32(9), l.Type)
		assert.Equal(t, 7, l.CellGlobal)
	}
}
