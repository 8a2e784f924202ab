package surf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ComputeNormals fills in Normal for every triangle in s from its
// vertex winding, using gonum's r3 vector type rather than hand-rolled
// cross-product arithmetic.
func ComputeNormals(s *Store) {
	for i := range s.Tris {
		t := &s.Tris[i]
		p0 := r3.Vec{X: t.P[0][0], Y: t.P[0][1], Z: t.P[0][2]}
		p1 := r3.Vec{X: t.P[1][0], Y: t.P[1][1], Z: t.P[1][2]}
		p2 := r3.Vec{X: t.P[2][0], Y: t.P[2][1], Z: t.P[2][2]}
		e1 := r3.Sub(p1, p0)
		e2 := r3.Sub(p2, p0)
		n := r3.Cross(e1, e2)
		if norm := r3.Norm(n); norm > 0 {
			n = r3.Scale(1/norm, n)
		}
		t.Normal = [3]float64{n.X, n.Y, n.Z}
	}
}

// ComputeNormals2D fills in the outward perpendicular for every 2D
// line segment, the marching-squares analogue of ComputeNormals.
func ComputeNormals2D(s *Store) {
	for i := range s.Lines {
		l := &s.Lines[i]
		dx := l.P[1][0] - l.P[0][0]
		dy := l.P[1][1] - l.P[0][1]
		nx, ny := dy, -dx
		if norm := nx*nx + ny*ny; norm > 0 {
			inv := 1 / math.Sqrt(norm)
			nx, ny = nx*inv, ny*inv
		}
		l.Normal = [2]float64{nx, ny}
	}
}
