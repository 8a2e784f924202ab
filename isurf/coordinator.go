package isurf

import (
	"sync"

	"github.com/gridflow/isurf/grid"
	"github.com/gridflow/isurf/surf"
	"github.com/gridflow/isurf/transport"
)

// BuildPartitionedGrids divides a uniform Nx x Ny x Nz block of cells
// along x across np ranks, the way read_isurf's caller assigns whole
// x-slabs of a processor grid, using transport.AxisPartition exactly
// as it's used to split a 1D index range in DG3D's own partitioning.
// It returns one *grid.Grid and *grid.CellHash per rank, plus a
// NeighborFunc every rank's Reconciler shares for cross-rank face
// resolution.
func BuildPartitionedGrids(name string, nx, ny, nz int, is2D bool, np int) ([]*grid.Grid, []*grid.CellHash, NeighborFunc) {
	ap := transport.NewAxisPartition(np, nx)
	grids := make([]*grid.Grid, np)
	hashes := make([]*grid.CellHash, np)
	for r := 0; r < np; r++ {
		grids[r] = grid.NewGrid(name, nx, ny, nz, is2D)
		hashes[r] = grid.NewCellHash(nx, ny, nz)
	}

	zExtent := nz
	if is2D {
		zExtent = 1
	}
	cellRank := make(map[int]int, nx*ny*zExtent)
	cellLocal := make(map[int]int, nx*ny*zExtent)
	localCounters := make([]int, np)

	for k := 0; k < zExtent; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				global := i + j*nx + k*nx*ny
				r, _ := ap.OwnerOf(i)
				local := localCounters[r]
				localCounters[r]++
				lo := [3]float64{float64(i), float64(j), float64(k)}
				hi := [3]float64{float64(i + 1), float64(j + 1), float64(k + 1)}
				grids[r].AddCell(local, global, lo, hi)
				hashes[r].Set(i, j, k, int32(local))
				cellRank[global] = r
				cellLocal[global] = local
			}
		}
	}

	neighbor := func(cellGlobal, face int) (rank, neighborLocal, neighborFace int, ok bool) {
		i := cellGlobal % nx
		j := (cellGlobal / nx) % ny
		k := cellGlobal / (nx * ny)
		di, dj, dk := 0, 0, 0
		switch face {
		case 0:
			di = -1
		case 1:
			di = 1
		case 2:
			dj = -1
		case 3:
			dj = 1
		case 4:
			dk = -1
		case 5:
			dk = 1
		}
		ni, nj, nk := i+di, j+dj, k+dk
		if ni < 0 || ni >= nx || nj < 0 || nj >= ny || nk < 0 || nk >= zExtent {
			return 0, 0, 0, false
		}
		ng := ni + nj*nx + nk*nx*ny
		nrank, ok2 := cellRank[ng]
		if !ok2 {
			return 0, 0, 0, false
		}
		// opposite face on the neighbour's side: swap direction within
		// the same axis (0<->1, 2<->3, 4<->5).
		nface := face ^ 1
		return nrank, cellLocal[ng], nface, true
	}
	return grids, hashes, neighbor
}

// NewCornersBuffer allocates the per-cell scratch array Scatter writes
// raw corner samples into (the theta shift is applied later, when the
// cells are tessellated): 4 slots per cell in 2D, 8 in 3D.
func NewCornersBuffer(g *grid.Grid) [][]float64 {
	width := 8
	if g.Is2D {
		width = 4
	}
	corners := make([][]float64, len(g.Cells))
	for i := range corners {
		corners[i] = make([]float64, width)
	}
	return corners
}

// DistributedOutcome is one rank's result from RunDistributed.
type DistributedOutcome struct {
	Store *surf.Store
	Times *PhaseTimes
	Err   error
}

// RunDistributed fans out Run across every rank's RunConfig as a
// goroutine, the in-process stand-in for launching P MPI processes,
// and waits for all of them to finish. Every element of cfgs must
// share the same cfgs[i].Comm (built for len(cfgs) ranks).
func RunDistributed(cfgs []*RunConfig) []DistributedOutcome {
	np := len(cfgs)
	out := make([]DistributedOutcome, np)
	var wg sync.WaitGroup
	wg.Add(np)
	for r := 0; r < np; r++ {
		r := r
		go func() {
			defer wg.Done()
			store, pt, err := Run(cfgs[r])
			out[r] = DistributedOutcome{Store: store, Times: pt, Err: err}
		}()
	}
	wg.Wait()
	return out
}
