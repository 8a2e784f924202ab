package grid

import "github.com/james-bowman/sparse"

// FacesPerCell3D and FacesPerCell2D give the face count addressed by a
// FaceTallyMatrix's second dimension for hex and quad cells.
const (
	FacesPerCell3D = 6
	FacesPerCell2D = 4
)

// FaceTallyMatrix counts, per (cell, face), how many triangles the
// tessellator emitted against that face. The face reconciler's global
// invariant (every interior face carries 0 or 2 triangles, spec.md
// §4.6 step 2) is a sparse check over a matrix that is overwhelmingly
// zero, so it is backed by james-bowman/sparse's DOK the way
// utils/sparse.go wraps it for this corpus's other sparse uses.
type FaceTallyMatrix struct {
	m            *sparse.DOK
	facesPerCell int
}

// NewFaceTallyMatrix allocates a tally over nCells cells with
// facesPerCell faces each (FacesPerCell3D or FacesPerCell2D).
func NewFaceTallyMatrix(nCells, facesPerCell int) *FaceTallyMatrix {
	return &FaceTallyMatrix{
		m:            sparse.NewDOK(nCells, facesPerCell),
		facesPerCell: facesPerCell,
	}
}

// Incr adds one to the tally for (cellLocal, face).
func (f *FaceTallyMatrix) Incr(cellLocal, face int) {
	f.m.Set(cellLocal, face, f.m.At(cellLocal, face)+1)
}

// Count returns the current tally for (cellLocal, face).
func (f *FaceTallyMatrix) Count(cellLocal, face int) int {
	return int(f.m.At(cellLocal, face))
}

// Violations returns every (cellLocal, face) whose tally is neither 0
// nor 2, the condition the reconciler must resolve before a grid's
// surface can be considered consistent.
func (f *FaceTallyMatrix) Violations() []FaceTally {
	var bad []FaceTally
	rows, _ := f.m.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < f.facesPerCell; c++ {
			v := int(f.m.At(r, c))
			if v != 0 && v != 2 {
				bad = append(bad, FaceTally{CellLocal: r, Face: c, Count: v})
			}
		}
	}
	return bad
}

// FaceTally is one nonconforming (cell, face) entry.
type FaceTally struct {
	CellLocal int
	Face      int
	Count     int
}
