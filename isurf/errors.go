package isurf

import "fmt"

// BoundaryViolationError reports a nonzero sample on the grid's outer
// boundary, the corner-scatter fatal condition spec §4.5 step 3 names.
type BoundaryViolationError struct {
	I, J, K int
	Value   byte
}

func (e *BoundaryViolationError) Error() string {
	return fmt.Sprintf("isurf: grid boundary value != 0 at (%d,%d,%d) = %d", e.I, e.J, e.K, e.Value)
}

// FaceInvariantError reports a (cell,face) whose triangle tally is
// neither 0 nor 2, spec §4.6 step 2's global check. CellLocal is
// rank-local: the violating rank may not be the one observing total>0.
type FaceInvariantError struct {
	CellLocal, Face, Count int
}

func (e *FaceInvariantError) Error() string {
	return fmt.Sprintf("isurf: face invariant violated at local cell %d face %d: count %d", e.CellLocal, e.Face, e.Count)
}
