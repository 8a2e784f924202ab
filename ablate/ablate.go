// Package ablate implements the external "fix ablate" collaborator:
// the store-corners round trip spec.md §6 names as a consumed contract
// for a later surface-recession step that rebuilds a surface from
// recessed corner values.
package ablate

import (
	"fmt"

	"github.com/gridflow/isurf/grid"
)

// Collaborator owns the per-cell corner-value snapshots ablate needs to
// recompute an implicit surface after recession, without re-reading the
// original grid file.
type Collaborator struct {
	groupBit uint32
	corners  map[int][]float64 // keyed by global cell index
}

// NewCollaborator returns a Collaborator scoped to the given surf
// group's bitmask.
func NewCollaborator(groupBit uint32) *Collaborator {
	return &Collaborator{groupBit: groupBit, corners: make(map[int][]float64)}
}

// StoreCorners snapshots a cell's corner values for later re-emission.
// The cell must already carry the collaborator's group, matching
// read_isurf's requirement that fix ablate only stores corners for
// cells already on the surface group it owns.
func (c *Collaborator) StoreCorners(cell *grid.Cell, values []float64) error {
	if cell.GroupBit&c.groupBit == 0 {
		return fmt.Errorf("ablate: cell %d not in group (mask %#x, cell %#x)",
			cell.Global, c.groupBit, cell.GroupBit)
	}
	snap := make([]float64, len(values))
	copy(snap, values)
	c.corners[cell.Global] = snap
	return nil
}

// Corners returns the stored snapshot for a cell, or nil if none was
// stored.
func (c *Collaborator) Corners(cellGlobal int) []float64 {
	return c.corners[cellGlobal]
}

// VerifyGroup checks that every cell with a stored snapshot still
// carries the collaborator's group bit, the invariant a subsequent
// read_isurf pass over the same group must hold before it can safely
// reuse ablate's stored corners.
func (c *Collaborator) VerifyGroup(cells []grid.Cell) error {
	byGlobal := make(map[int]*grid.Cell, len(cells))
	for i := range cells {
		byGlobal[cells[i].Global] = &cells[i]
	}
	for global := range c.corners {
		cell, ok := byGlobal[global]
		if !ok {
			return fmt.Errorf("ablate: stored cell %d no longer present in grid", global)
		}
		if cell.GroupBit&c.groupBit == 0 {
			return fmt.Errorf("ablate: stored cell %d dropped out of group", global)
		}
	}
	return nil
}
