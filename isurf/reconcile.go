package isurf

import (
	"fmt"
	"sort"

	"github.com/gridflow/isurf/grid"
	"github.com/gridflow/isurf/surf"
	"github.com/gridflow/isurf/transport"
)

// RemoteRecord is one packed cross-process reconciliation request
// (spec §4.6 step 3's remote branch), modeled on the shape of
// DG3D/face_buffer/face_buffer_runtime.go's RemoteBufferData: a
// partition-keyed record describing what the sending side found on a
// shared face, for the owning rank to apply deterministically.
type RemoteRecord struct {
	SenderCellGlobal int
	SenderFace       int
	NeighborLocal    int
	NeighborFace     int
	InwardNorm       bool
	Tri1, Tri2       surf.Triangle
}

// NeighborFunc resolves the neighbor of (cellGlobal, face): which rank
// owns it, its local index on that rank, and the matching face id on
// its side. Supplied by the grid collaborator.
type NeighborFunc func(cellGlobal, face int) (rank, neighborLocal, neighborFace int, ok bool)

// Reconciler runs the face-reconciliation pass (spec §4.6) over one
// rank's owned cells.
type Reconciler struct {
	comm      *transport.Communicator
	rank, np  int
	neighbor  NeighborFunc
	mb        *transport.MailBox[RemoteRecord]
	deleteIdx map[int]bool // tri index -> pending delete, this pass
}

// NewReconciler returns a Reconciler bound to comm/rank and the given
// neighbor resolver.
func NewReconciler(comm *transport.Communicator, rank int, neighbor NeighborFunc) *Reconciler {
	return &Reconciler{
		comm:      comm,
		rank:      rank,
		np:        comm.NP(),
		neighbor:  neighbor,
		mb:        transport.NewMailBox[RemoteRecord](comm.NP()),
		deleteIdx: make(map[int]bool),
	}
}

// TallyFaces implements spec §4.6 step 1: for every owned cell with at
// least one triangle, classify each triangle against the 6 face
// planes and build a tally matrix plus a (cell,face)->triangle-index
// map.
func TallyFaces(store *surf.Store, cellsLocal map[int]*grid.Cell, tol float64) (*grid.FaceTallyMatrix, map[[2]int][]int) {
	maxLocal := 0
	for _, c := range cellsLocal {
		if c.Local > maxLocal {
			maxLocal = c.Local
		}
	}
	ft := grid.NewFaceTallyMatrix(maxLocal+1, grid.FacesPerCell3D)
	byCellFace := make(map[[2]int][]int)
	for idx := range store.Tris {
		t := &store.Tris[idx]
		cell, ok := cellsLocal[t.CellGlobal]
		if !ok {
			continue
		}
		centroid := [3]float64{
			(t.P[0][0] + t.P[1][0] + t.P[2][0]) / 3,
			(t.P[0][1] + t.P[1][1] + t.P[2][1]) / 3,
			(t.P[0][2] + t.P[1][2] + t.P[2][2]) / 3,
		}
		face, on := grid.TriOnHexFace(centroid, cell.Lo, cell.Hi, tol)
		if !on {
			continue
		}
		ft.Incr(cell.Local, face)
		key := [2]int{t.CellGlobal, face}
		byCellFace[key] = append(byCellFace[key], idx)
	}
	return ft, byCellFace
}

// CheckGlobalInvariant implements spec §4.6 step 2: every face must
// carry 0 or 2 triangles, collectively.
func CheckGlobalInvariant(comm *transport.Communicator, rank int, ft *grid.FaceTallyMatrix) error {
	violations := ft.Violations()
	localBad := int64(len(violations))
	total := comm.AllReduceSum(rank, localBad)
	if total > 0 {
		if len(violations) > 0 {
			v := violations[0]
			return &FaceInvariantError{CellLocal: v.CellLocal, Face: v.Face, Count: v.Count}
		}
		return fmt.Errorf("isurf: face invariant violated on a remote rank")
	}
	return nil
}

// inwardNormal reports whether tri's normal points into cell A along
// the face's outward axis (spec §4.6 step 3's inwardnorm test): the
// component of the normal along the face's axis must oppose the
// face's outward direction.
func inwardNormal(t *surf.Triangle, face int) bool {
	axis := face / 2
	outward := face%2 == 1
	n := t.Normal[axis]
	if outward {
		return n < 0
	}
	return n > 0
}

// Reconcile drives steps 3-6 of spec §4.6 across one rank's tallied
// faces. cellsLocal maps global cell index to its local record;
// tallyIdx is byCellFace from TallyFaces; localOf resolves a global
// cell index (including one named by a remote record after exchange)
// to its local cell index.
func (r *Reconciler) Reconcile(store *surf.Store, cellsLocal map[int]*grid.Cell, tallyIdx map[[2]int][]int, localOf map[int]int) error {
	for key, idxs := range tallyIdx {
		if len(idxs) != 2 {
			continue
		}
		cellGlobal, face := key[0], key[1]
		nrank, neighborLocal, neighborFace, ok := r.neighbor(cellGlobal, face)
		if !ok {
			return fmt.Errorf("isurf: missing neighbour for cell %d face %d", cellGlobal, face)
		}
		t1, t2 := &store.Tris[idxs[0]], &store.Tris[idxs[1]]
		inward := inwardNormal(t1, face)

		if nrank == r.rank {
			nGlobal := localGlobal(localOf, neighborLocal)
			nIdxs := tallyIdx[[2]int{nGlobal, neighborFace}]
			switch len(nIdxs) {
			case 0:
				if !inward {
					moveTris(store, idxs, nGlobal)
				}
			case 2:
				r.markDelete(idxs...)
				r.markDelete(nIdxs...)
				delete(tallyIdx, [2]int{nGlobal, neighborFace})
			}
			continue
		}

		rec := RemoteRecord{
			SenderCellGlobal: cellGlobal,
			SenderFace:       face,
			NeighborLocal:    neighborLocal,
			NeighborFace:     neighborFace,
			InwardNorm:       inward,
			Tri1:             *t1,
			Tri2:             *t2,
		}
		r.mb.Send(nrank, rec)
		if !inward {
			r.markDelete(idxs...)
		}
	}

	r.comm.Barrier()

	for _, rec := range r.mb.Drain(r.rank) {
		cellGlobal := localGlobal(localOf, rec.NeighborLocal)
		key := [2]int{cellGlobal, rec.NeighborFace}
		idxs := tallyIdx[key]
		switch {
		case len(idxs) == 0 && rec.InwardNorm:
		case len(idxs) == 0 && !rec.InwardNorm:
			rec.Tri1.CellGlobal = cellGlobal
			rec.Tri2.CellGlobal = cellGlobal
			i1 := store.AddTri(rec.Tri1)
			i2 := store.AddTri(rec.Tri2)
			tallyIdx[key] = []int{i1, i2}
		case len(idxs) == 2 && inwardNormal(&store.Tris[idxs[0]], rec.NeighborFace):
			r.markDelete(idxs...)
		}
	}

	r.compact(store)
	return nil
}

func localGlobal(localOf map[int]int, local int) int {
	for g, l := range localOf {
		if l == local {
			return g
		}
	}
	return local
}

func moveTris(store *surf.Store, idxs []int, newCellGlobal int) {
	for _, idx := range idxs {
		store.MoveTri(idx, newCellGlobal)
	}
}

func (r *Reconciler) markDelete(idxs ...int) {
	for _, i := range idxs {
		r.deleteIdx[i] = true
	}
}

// compact implements spec §4.6 step 6: sort pending deletes descending
// and swap-with-end, matching surf.Store.DeleteTris's required order.
func (r *Reconciler) compact(store *surf.Store) {
	if len(r.deleteIdx) == 0 {
		return
	}
	idxs := make([]int, 0, len(r.deleteIdx))
	for i := range r.deleteIdx {
		idxs = append(idxs, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idxs)))
	store.DeleteTris(idxs)
	r.deleteIdx = make(map[int]bool)
}
