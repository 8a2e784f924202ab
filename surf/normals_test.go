package surf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeNormals_UnitTriangle(t *testing.T) {
	s := NewStore()
	s.AddTri(Triangle{P: [3][3]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}})
	ComputeNormals(s)
	assert.InDelta(t, 0, s.Tris[0].Normal[0], 1e-9)
	assert.InDelta(t, 0, s.Tris[0].Normal[1], 1e-9)
	assert.InDelta(t, 1, s.Tris[0].Normal[2], 1e-9)
}

func TestComputeNormals2D_UnitSegment(t *testing.T) {
	s := NewStore()
	s.AddLine(Line{P: [2][2]float64{{0, 0}, {1, 0}}})
	ComputeNormals2D(s)
	assert.InDelta(t, 0, s.Lines[0].Normal[0], 1e-9)
	assert.InDelta(t, -1, s.Lines[0].Normal[1], 1e-9)
}
