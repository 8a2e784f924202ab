package transport

// CellRange is a half-open [Start,End) span of global cell indices
// along one grid axis.
type CellRange struct {
	Start, End int
}

// Len returns the number of indices the range covers.
func (r CellRange) Len() int { return r.End - r.Start }

// AxisPartition assigns every cell index along one grid axis to the
// rank that owns it, the way a grid's x-extent is sliced into per-rank
// slabs before the corner scatter (spec C.2): each rank gets either
// floor(extent/numRanks) or that plus one cell, with the remainder
// spread one cell at a time over the lowest-numbered ranks.
type AxisPartition struct {
	extent int
	ranges []CellRange
}

// NewAxisPartition splits extent indices across numRanks ranks with at
// most one index of imbalance between any two ranks.
func NewAxisPartition(numRanks, extent int) *AxisPartition {
	ap := &AxisPartition{extent: extent, ranges: make([]CellRange, numRanks)}
	base := extent / numRanks
	remainder := extent % numRanks
	start := 0
	for r := 0; r < numRanks; r++ {
		size := base
		if r < remainder {
			size++
		}
		ap.ranges[r] = CellRange{Start: start, End: start + size}
		start += size
	}
	return ap
}

// NumRanks returns the number of ranks the axis was split across.
func (ap *AxisPartition) NumRanks() int { return len(ap.ranges) }

// Extent returns the total number of indices partitioned.
func (ap *AxisPartition) Extent() int { return ap.extent }

// RangeOf returns the span rank owns along the partitioned axis.
func (ap *AxisPartition) RangeOf(rank int) CellRange { return ap.ranges[rank] }

// OwnerOf returns the rank owning global index i, plus that rank's own
// range. i must lie in [0, Extent()); callers partition a grid's own
// extent so this never needs to fail gracefully.
func (ap *AxisPartition) OwnerOf(i int) (rank int, span CellRange) {
	for r, rng := range ap.ranges {
		if i >= rng.Start && i < rng.End {
			return r, rng
		}
	}
	panic("transport: index out of partition range")
}

// LocalIndex converts a global axis index into (local index, owning
// rank); GlobalIndex is its inverse.
func (ap *AxisPartition) LocalIndex(global int) (local, rank int) {
	rank, span := ap.OwnerOf(global)
	return global - span.Start, rank
}

// GlobalIndex converts a rank-local axis index back into a global one.
func (ap *AxisPartition) GlobalIndex(local, rank int) int {
	return ap.ranges[rank].Start + local
}
