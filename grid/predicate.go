package grid

import "gonum.org/v1/gonum/mat"

// TriOnHexFace reports which of a hex cell's six faces (in -x,+x,-y,
// +y,-z,+z order) a triangle with the given centroid lies flush
// against, within tol of the cell's lo/hi extent. Returns ok=false if
// the centroid is not flush against any face (an interior triangle).
//
// The actual test compares the centroid's coordinate along each face's
// axis with that face's lo/hi value; the first face within tol wins.
func TriOnHexFace(centroid, lo, hi [3]float64, tol float64) (face int, ok bool) {
	faces := [6]struct {
		axis int
		val  float64
	}{
		{0, lo[0]}, {0, hi[0]},
		{1, lo[1]}, {1, hi[1]},
		{2, lo[2]}, {2, hi[2]},
	}
	for i, f := range faces {
		if diff := centroid[f.axis] - f.val; diff > -tol && diff < tol {
			return i, true
		}
	}
	return -1, false
}

// PlaneCoefficients solves for the implicit plane ax+by+cz=d through
// three points, used by predicate checks that need the full plane
// rather than the axis-aligned fast path TriOnHexFace takes.
func PlaneCoefficients(p0, p1, p2 [3]float64) (a, b, c, d float64) {
	u := mat.NewVecDense(3, []float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]})
	v := mat.NewVecDense(3, []float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]})
	n := cross(u, v)
	a, b, c = n.AtVec(0), n.AtVec(1), n.AtVec(2)
	d = a*p0[0] + b*p0[1] + c*p0[2]
	return
}

func cross(u, v *mat.VecDense) *mat.VecDense {
	return mat.NewVecDense(3, []float64{
		u.AtVec(1)*v.AtVec(2) - u.AtVec(2)*v.AtVec(1),
		u.AtVec(2)*v.AtVec(0) - u.AtVec(0)*v.AtVec(2),
		u.AtVec(0)*v.AtVec(1) - u.AtVec(1)*v.AtVec(0),
	})
}
