package grid

// CellHash maps a global (i,j,k) cell index, flattened into a single
// int64 key, to the rank-local slot owning that cell. Grounded on
// ReadISurf::create_hash, which builds exactly this kind of lookup
// before scattering corner values onto owned cells.
type CellHash struct {
	nx, ny, nz int64
	index      map[int64]int32
}

// NewCellHash allocates a hash sized for an nx x ny x nz block grid.
func NewCellHash(nx, ny, nz int) *CellHash {
	return &CellHash{
		nx: int64(nx), ny: int64(ny), nz: int64(nz),
		index: make(map[int64]int32),
	}
}

// Key flattens a 0-based (i,j,k) cell coordinate into the hash's key
// space. k is used as given; 2D callers pass k=0.
func (h *CellHash) Key(i, j, k int) int64 {
	return int64(i) + h.nx*(int64(j)+h.ny*int64(k))
}

// Set records that the cell at (i,j,k) lives at local slot.
func (h *CellHash) Set(i, j, k int, local int32) {
	h.index[h.Key(i, j, k)] = local
}

// Get returns the local slot owning (i,j,k), or ok=false if this rank
// does not own that cell.
func (h *CellHash) Get(i, j, k int) (local int32, ok bool) {
	local, ok = h.index[h.Key(i, j, k)]
	return
}

// Len reports how many cells this rank's hash currently owns.
func (h *CellHash) Len() int {
	return len(h.index)
}
