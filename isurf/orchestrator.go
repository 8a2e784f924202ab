package isurf

import (
	"fmt"
	"io"
	"time"

	"github.com/gridflow/isurf/grid"
	"github.com/gridflow/isurf/surf"
	"github.com/gridflow/isurf/transport"
	"github.com/pkg/profile"
)

// RunConfig carries everything one rank needs to run a full
// read-surf pass: the grid it owns, the lookup index onto that grid,
// the corner-value scratch array, the reconciler's neighbour resolver,
// and the stream to read grid corner data from (non-nil on root only).
type RunConfig struct {
	Rank, Root int
	Comm       *transport.Communicator
	Grid       *grid.Grid
	Hash       *grid.CellHash
	Corners    [][]float64
	GridReader io.Reader
	GroupName  string
	GroupMask  uint32
	Type       int32
	Theta      float64
	Neighbor   NeighborFunc
	Profile    bool
	// FaceTol is the coplanarity tolerance TallyFaces uses to decide
	// whether a triangle's centroid lies on one of its cell's 6 faces.
	// Zero means "use the package default" (1e-9).
	FaceTol float64
	// SamplePerf wraps the reconciler phase in SamplePerf's best-effort
	// hardware-counter sampling.
	SamplePerf bool
}

// PhaseTimes records the wall-clock duration of each stage of one
// Run, mirroring the elapsed/PrintFinal reporting Euler2D.Solve uses
// around its own time-stepping loop.
type PhaseTimes struct {
	Scatter, Tessellate, Normals, Reconcile time.Duration
	TrisEmitted, LinesEmitted               int
	Perf                                    PerfSample
}

// Run sequences scatter -> tessellate -> normals -> reconcile over one
// rank's partition, returning the surface store it built and a
// breakdown of phase timings. If cfg.Profile is set, the whole call is
// wrapped in a pkg/profile CPU profile (written to the default
// ./profile... directory on Stop).
func Run(cfg *RunConfig) (*surf.Store, *PhaseTimes, error) {
	if cfg.Profile {
		stop := profile.Start(profile.CPUProfile)
		defer stop.Stop()
	}

	if err := cfg.Grid.CheckUniformGroup(cfg.GroupName); err != nil {
		return nil, nil, err
	}

	store := surf.NewStore()
	pt := &PhaseTimes{}

	start := time.Now()
	if err := Scatter(cfg.Comm, cfg.Rank, cfg.Root, cfg.GridReader, cfg.Hash, cfg.Grid, cfg.Corners); err != nil {
		return nil, nil, err
	}
	pt.Scatter = time.Since(start)

	start = time.Now()
	if err := tessellateOwned(store, cfg); err != nil {
		return nil, nil, err
	}
	pt.Tessellate = time.Since(start)
	pt.TrisEmitted = len(store.Tris)
	pt.LinesEmitted = len(store.Lines)

	start = time.Now()
	if cfg.Grid.Is2D {
		surf.ComputeNormals2D(store)
	} else {
		surf.ComputeNormals(store)
	}
	pt.Normals = time.Since(start)

	start = time.Now()
	var reconcileErr error
	if cfg.SamplePerf {
		pt.Perf = SamplePerf(func() { reconcileErr = reconcileOwned(store, cfg) })
	} else {
		reconcileErr = reconcileOwned(store, cfg)
	}
	if reconcileErr != nil {
		return nil, nil, reconcileErr
	}
	pt.Reconcile = time.Since(start)

	cfg.Comm.Barrier()
	if aborted, err := cfg.Comm.IsAborted(); aborted {
		return nil, nil, err
	}
	return store, pt, nil
}

// tessellateOwned runs the cell tessellator (T) over every cell this
// rank owns that straddles the iso-level, marking HasSurf/GroupBit/
// Type on cells that gain a primitive. A nonzero per-cell Type set by
// ScatterTypes is stamped on that cell's primitives in place of
// cfg.Type.
func tessellateOwned(store *surf.Store, cfg *RunConfig) error {
	g := cfg.Grid
	for i := range g.Cells {
		cell := &g.Cells[i]
		values := cfg.Corners[cell.Local]
		typ := cfg.Type
		if cell.Type != 0 {
			typ = cell.Type
		}
		var n int
		if g.Is2D {
			sq := &Square{Lo: [2]float64{cell.Lo[0], cell.Lo[1]}, Hi: [2]float64{cell.Hi[0], cell.Hi[1]}, CellID: cell.Global}
			for k := 0; k < 4; k++ {
				sq.Values[k] = values[k] - cfg.Theta
			}
			n = Tessellate2D(store, sq, cfg.GroupMask, typ)
		} else {
			cube := &Cube{Lo: cell.Lo, Hi: cell.Hi, CellID: cell.Global}
			for k := 0; k < 8; k++ {
				cube.Values[k] = values[k] - cfg.Theta
			}
			n = Tessellate3D(store, cube, cfg.GroupMask, typ)
		}
		if n > 0 {
			cell.HasSurf = true
			cell.GroupBit |= cfg.GroupMask
			if cell.Type == 0 {
				// ScatterTypes (if a types file was supplied) already
				// assigned a per-cell type; only fall back to the
				// command's default when none was set.
				cell.Type = cfg.Type
			}
		}
	}
	return nil
}

// reconcileOwned runs the tally/global-check/reconcile sequence (R)
// over the store the tessellator just filled.
func reconcileOwned(store *surf.Store, cfg *RunConfig) error {
	cellsLocal := make(map[int]*grid.Cell, len(cfg.Grid.Cells))
	localOf := make(map[int]int, len(cfg.Grid.Cells))
	for i := range cfg.Grid.Cells {
		c := &cfg.Grid.Cells[i]
		cellsLocal[c.Global] = c
		localOf[c.Global] = c.Local
	}

	tol := cfg.FaceTol
	if tol == 0 {
		tol = 1e-9
	}
	ft, tallyIdx := TallyFaces(store, cellsLocal, tol)
	if err := CheckGlobalInvariant(cfg.Comm, cfg.Rank, ft); err != nil {
		return err
	}

	r := NewReconciler(cfg.Comm, cfg.Rank, cfg.Neighbor)
	return r.Reconcile(store, cellsLocal, tallyIdx, localOf)
}

// SummaryLine renders a one-line phase-timing report in the same
// rate-per-element-iteration spirit as Euler.PrintFinal.
func (pt *PhaseTimes) SummaryLine() string {
	line := fmt.Sprintf(
		"scatter=%v tessellate=%v normals=%v reconcile=%v tris=%d lines=%d",
		pt.Scatter, pt.Tessellate, pt.Normals, pt.Reconcile, pt.TrisEmitted, pt.LinesEmitted,
	)
	if pt.Perf.Available {
		line += fmt.Sprintf(" perf[cycles=%d instructions=%d]", pt.Perf.CPUCycles, pt.Perf.Instructions)
	}
	return line
}
