package isurf

import (
	"github.com/gridflow/isurf/surf"
)

// Cube holds one cell's eight corner values and geometric extent, the
// input the 3D tessellator consumes.
type Cube struct {
	Values [8]float64 // already theta-shifted
	Lo, Hi [3]float64
	CellID int
}

// cornerPos returns the physical position of corner c within the
// cube's lo/hi box.
func (c *Cube) cornerPos(corner int) [3]float64 {
	x := (corner) & 1
	y := (corner >> 1) & 1
	z := (corner >> 2) & 1
	pick := func(axis, bit int) float64 {
		if bit == 1 {
			return c.Hi[axis]
		}
		return c.Lo[axis]
	}
	return [3]float64{pick(0, x), pick(1, y), pick(2, z)}
}

// edgePoint interpolates the crossing point on edge e via I.
func (c *Cube) edgePoint(e int) [3]float64 {
	pair := cubeEdges[e]
	p0, p1 := c.cornerPos(pair[0]), c.cornerPos(pair[1])
	v0, v1 := c.Values[pair[0]], c.Values[pair[1]]
	var out [3]float64
	for axis := 0; axis < 3; axis++ {
		out[axis] = Interpolate(v0, v1, 0, p0[axis], p1[axis])
	}
	return out
}

// Tessellate3D runs the marching-cubes driver over one cube (spec
// §4.4), emitting triangles into store and returning the number
// emitted. groupMask/typ are stamped onto every emitted triangle.
func Tessellate3D(store *surf.Store, c *Cube, groupMask uint32, typ int32) int {
	var raw uint8
	for i := 0; i < 8; i++ {
		if c.Values[i] > 0 {
			raw |= 1 << i
		}
	}
	icase := Classify(raw)

	inside := insideCorners(raw)
	if len(inside) == 0 || len(inside) == 8 {
		return 0
	}

	// Icase3's ambiguity (a face-diagonal corner pair) is resolved
	// inline, per face, inside facePairing: whichever face actually
	// carries the diagonal pattern is the one testFace is asked about,
	// not a fixed face number. The remaining ambiguous icases describe
	// whether two or more surface loops that facePairing traced
	// independently should be stitched into one connected sheet
	// through the cube's interior; merge carries that answer.
	// Every oracle below returns true for the "interior empty" / two
	// separate sheets reading (matching read_isurf.cpp's own return
	// convention); merge wants the opposite sense, since merge means
	// stitch the loops into one connected surface through the center.
	merge := false
	switch icase {
	case Icase4, Icase10:
		merge = !testInterior(7, c.Values)
	case Icase6, Icase7, Icase12:
		merge = !modifiedTestInterior(7, icase, c.Values)
	case Icase13:
		merge = !interiorTestCase13(c.Values)
	}

	tris := contourCube(c, raw, merge)
	for _, t := range tris {
		store.AddTri(surf.Triangle{
			P:          [3][3]float64{t[2], t[1], t[0]},
			CellGlobal: c.CellID,
			GroupMask:  groupMask,
			Type:       typ,
		})
	}
	return len(tris)
}

// contourCube traces the cube's iso-contour as a set of closed edge
// loops (one per face of the six hex faces contributes 0, 1, or 2
// segments to those loops via facePairing) and triangulates them: a
// single loop is fan-triangulated from one of its own vertices, and
// when merge says two or more loops are one connected surface, every
// loop instead fans through the shared flow centroid so the loops
// join into a single sheet through the cube's interior.
func contourCube(c *Cube, raw uint8, merge bool) [][3][3]float64 {
	adj := map[int][]int{}
	for fi, f := range cubeFaces {
		faceID := fi + 1
		for _, p := range facePairing(faceID, f, c.Values) {
			ga := edgeBetween(f[p[0]], f[(p[0]+1)%4])
			gb := edgeBetween(f[p[1]], f[(p[1]+1)%4])
			if ga < 0 || gb < 0 {
				continue
			}
			adj[ga] = append(adj[ga], gb)
			adj[gb] = append(adj[gb], ga)
		}
	}
	loops := traceLoops(adj)
	return triangulateLoops(c, raw, loops, merge)
}

// facePairing returns one hex face's marching-squares contour as
// local edge-id pairs (edge k runs between f[k] and f[(k+1)%4]).
// faceID is the signed 1-based cubeFaces index testFace expects, used
// only to resolve a face's diagonal ambiguity (two opposite corners of
// the face inside, the other two outside).
func facePairing(faceID int, f [4]int, v [8]float64) [][2]int {
	var idx uint8
	for k, corner := range f {
		if v[corner] > 0 {
			idx |= 1 << uint(k)
		}
	}
	switch popcount8(idx) {
	case 0, 4:
		return nil
	case 2:
		if idx == 0x5 || idx == 0xA {
			if testFace(faceID, v) {
				return [][2]int{{0, 1}, {2, 3}}
			}
			return [][2]int{{3, 0}, {1, 2}}
		}
		for b := 0; b < 4; b++ {
			if idx&(1<<uint(b)) != 0 && idx&(1<<uint((b+1)%4)) != 0 {
				return [][2]int{{(b + 3) % 4, (b + 1) % 4}}
			}
		}
		return nil
	default: // 1 or 3 corners inside
		p := singleBit(idx)
		if popcount8(idx) == 3 {
			p = singleBit(^idx & 0xF)
		}
		return [][2]int{{(p + 3) % 4, p}}
	}
}

func singleBit(idx uint8) int {
	for b := 0; b < 4; b++ {
		if idx&(1<<uint(b)) != 0 {
			return b
		}
	}
	return -1
}

// traceLoops walks adj, a degree-2 graph of global cube-edge ids (each
// crossing edge is shared by exactly two faces, so it is paired with a
// partner edge on each of them), and returns its cycles. Every cube
// surface contour built from facePairing is, by construction, a
// disjoint union of such cycles.
func traceLoops(adj map[int][]int) [][]int {
	visited := make(map[int]bool, len(adj))
	var loops [][]int
	for start := range adj {
		if visited[start] {
			continue
		}
		loop := []int{start}
		visited[start] = true
		prev, cur := -1, start
		for step := 0; step < len(cubeEdges); step++ {
			next := -1
			for _, n := range adj[cur] {
				if n != prev {
					next = n
					break
				}
			}
			if next == -1 && len(adj[cur]) > 0 {
				next = adj[cur][0]
			}
			if next == -1 || next == start {
				break
			}
			if visited[next] {
				break
			}
			loop = append(loop, next)
			visited[next] = true
			prev, cur = cur, next
		}
		loops = append(loops, loop)
	}
	return loops
}

// triangulateLoops fans each traced loop into triangles. When merge is
// set and there is more than one loop, every loop fans through the
// shared interior centroid instead of its own first vertex, so the
// emitted triangles form one connected surface spanning every loop.
func triangulateLoops(c *Cube, raw uint8, loops [][]int, merge bool) [][3][3]float64 {
	var out [][3][3]float64
	if merge && len(loops) > 1 {
		centroid := flowCentroid(c, insideCorners(raw))
		for _, loop := range loops {
			n := len(loop)
			for i := 0; i < n; i++ {
				p0 := c.edgePoint(loop[i])
				p1 := c.edgePoint(loop[(i+1)%n])
				out = append(out, [3][3]float64{p0, p1, centroid})
			}
		}
		return out
	}
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		p0 := c.edgePoint(loop[0])
		for i := 1; i+1 < len(loop); i++ {
			p1, p2 := c.edgePoint(loop[i]), c.edgePoint(loop[i+1])
			out = append(out, [3][3]float64{p0, p1, p2})
		}
	}
	return out
}

// incidentCrossingEdges returns the cube edges touching corner that
// cross the iso-level (the corner's own value and its neighbor's value
// straddle zero).
func incidentCrossingEdges(c *Cube, corner int) []int {
	var out []int
	for id, e := range cubeEdges {
		var other int
		switch {
		case e[0] == corner:
			other = e[1]
		case e[1] == corner:
			other = e[0]
		default:
			continue
		}
		if (c.Values[corner] > 0) != (c.Values[other] > 0) {
			out = append(out, id)
		}
	}
	return out
}

// flowCentroid computes the flow-weighted average of every crossing
// edge's interpolated point incident to inside, spec §4.4 step 5's
// edge-id-12 point, and is the shared vertex contourCube's merge path
// stitches disjoint loops through.
func flowCentroid(c *Cube, inside []int) [3]float64 {
	var sum [3]float64
	n := 0
	seen := make(map[int]bool)
	for _, corner := range inside {
		for _, e := range incidentCrossingEdges(c, corner) {
			if seen[e] {
				continue
			}
			seen[e] = true
			p := c.edgePoint(e)
			sum[0] += p[0]
			sum[1] += p[1]
			sum[2] += p[2]
			n++
		}
	}
	if n == 0 {
		return [3]float64{}
	}
	return [3]float64{sum[0] / float64(n), sum[1] / float64(n), sum[2] / float64(n)}
}
