package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaceTallyMatrix_ViolationsEmptyWhenPaired(t *testing.T) {
	ft := NewFaceTallyMatrix(4, FacesPerCell3D)
	ft.Incr(0, 2)
	ft.Incr(1, 2) // face 2 of cell 0 and face 2 of cell 1, each tallied twice below
	ft.Incr(0, 2)
	ft.Incr(1, 2)
	assert.Equal(t, 2, ft.Count(0, 2))
	assert.Empty(t, ft.Violations())
}

func TestFaceTallyMatrix_ViolationsFlagOddCounts(t *testing.T) {
	ft := NewFaceTallyMatrix(2, FacesPerCell3D)
	ft.Incr(0, 5)
	got := ft.Violations()
	assert.Len(t, got, 1)
	assert.Equal(t, FaceTally{CellLocal: 0, Face: 5, Count: 1}, got[0])
}
