// Package grid implements the external grid collaborator: the
// uniform-block hex/quad cell grid the core reads corner values onto,
// owns group/type bookkeeping for, and writes tessellated primitives
// into.
package grid

import (
	"strconv"

	"github.com/google/uuid"
)

// Cell is one grid cell (hex in 3D, quad in 2D). Corners are stored by
// the caller separately (isurf/scatter.go owns the corner-value array);
// Cell only carries what the grid itself is responsible for: identity,
// extent, and group/type membership.
type Cell struct {
	ID       uuid.UUID
	Local    int // rank-local index
	Global   int // global cell index
	Lo, Hi   [3]float64
	GroupBit uint32
	Type     int32
	HasSurf  bool
}

// Grid is a rank's partition of a uniform Nx x Ny x Nz block grid.
type Grid struct {
	Name       string
	Nx, Ny, Nz int
	Is2D       bool
	Cells      []Cell

	groups map[string]uint32
	nextBit uint32
}

// NewGrid allocates an empty grid over an Nx x Ny x Nz block. is2D
// selects the quad regime explicitly rather than inferring it from Nz,
// since a single-layer 3D grid (Nz==1) is a legitimate distinct shape
// from a 2D one.
func NewGrid(name string, nx, ny, nz int, is2D bool) *Grid {
	return &Grid{
		Name:   name,
		Nx:     nx,
		Ny:     ny,
		Nz:     nz,
		Is2D:   is2D,
		groups: make(map[string]uint32),
	}
}

// DefineGroup assigns the next free bit to a surf-group name, returning
// its bitmask. Re-defining an existing name returns its existing bit.
func (g *Grid) DefineGroup(name string) uint32 {
	if bit, ok := g.groups[name]; ok {
		return bit
	}
	if g.nextBit == 0 {
		g.nextBit = 1
	}
	bit := g.nextBit
	g.groups[name] = bit
	g.nextBit <<= 1
	return bit
}

// FindGroup returns the bitmask for an already-defined group name.
func (g *Grid) FindGroup(name string) (uint32, bool) {
	bit, ok := g.groups[name]
	return bit, ok
}

// AddCell appends a cell to the grid, assigning it a fresh UUID.
func (g *Grid) AddCell(local, global int, lo, hi [3]float64) *Cell {
	g.Cells = append(g.Cells, Cell{
		ID:     uuid.New(),
		Local:  local,
		Global: global,
		Lo:     lo,
		Hi:     hi,
	})
	return &g.Cells[len(g.Cells)-1]
}

// CheckUniformGroup verifies that every cell carrying any surface
// already belongs to the named group, the precondition read_isurf
// requires before scattering onto an existing surface group.
func (g *Grid) CheckUniformGroup(name string) error {
	bit, ok := g.groups[name]
	if !ok {
		return nil
	}
	for i := range g.Cells {
		c := &g.Cells[i]
		if c.HasSurf && c.GroupBit&bit == 0 {
			return &GroupMismatchError{CellGlobal: c.Global, Group: name}
		}
	}
	return nil
}

// ClearSurf removes the surface-presence flag and group/type tags from
// every cell, used before a fresh read_isurf pass replaces a grid's
// surface.
func (g *Grid) ClearSurf() {
	for i := range g.Cells {
		g.Cells[i].HasSurf = false
		g.Cells[i].GroupBit = 0
		g.Cells[i].Type = 0
	}
}

// GroupMismatchError reports a cell whose existing surface group
// disagrees with a newly requested one.
type GroupMismatchError struct {
	CellGlobal int
	Group      string
}

func (e *GroupMismatchError) Error() string {
	return "cell " + strconv.Itoa(e.CellGlobal) + " already carries surface outside group " + e.Group
}
