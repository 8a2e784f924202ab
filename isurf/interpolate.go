// Package isurf implements the core of the implicit-surface
// reconstruction pipeline: the interpolator, the Lewiner-style
// marching-cubes/marching-squares lookup tables and ambiguity oracle,
// the cell tessellator, the corner-scatter protocol, the
// face-reconciliation pass, and the orchestrator sequencing all of it.
package isurf

// Interpolate returns the position along an edge running from lo to hi
// where the scalar field, linearly varying between endpoint values v0
// and v1, crosses theta. Clamped to [lo, hi] so degenerate callers
// (both endpoints on the same side of theta) get a well-defined point
// rather than an extrapolated one. Grounded on
// ReadISurf::interpolate.
func Interpolate(v0, v1 float64, theta, lo, hi float64) float64 {
	if v1 == v0 {
		return lo
	}
	x := lo + (hi-lo)*(theta-v0)/(v1-v0)
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
