package isurf

import "github.com/gridflow/isurf/surf"

// Square holds one 2D cell's four corner values (bottom-left,
// bottom-right, top-left, top-right) and extent.
type Square struct {
	Values [4]float64 // theta-shifted
	Lo, Hi [2]float64
	CellID int
}

const (
	sqBL = 0
	sqBR = 1
	sqTL = 2
	sqTR = 3
)

// squareEdges gives the 4 edges of a quad, in the same corner-pair
// shape cubeEdges uses for 3D.
var squareEdges = [4][2]int{
	{sqBL, sqBR}, // bottom
	{sqBR, sqTR}, // right
	{sqTR, sqTL}, // top
	{sqTL, sqBL}, // left
}

func (sq *Square) cornerPos(c int) [2]float64 {
	x := (c) & 1
	y := (c >> 1) & 1
	pick := func(axis, bit int) float64 {
		if bit == 1 {
			return sq.Hi[axis]
		}
		return sq.Lo[axis]
	}
	return [2]float64{pick(0, x), pick(1, y)}
}

func (sq *Square) edgePoint(e int) [2]float64 {
	pair := squareEdges[e]
	p0, p1 := sq.cornerPos(pair[0]), sq.cornerPos(pair[1])
	v0, v1 := sq.Values[pair[0]], sq.Values[pair[1]]
	var out [2]float64
	for axis := 0; axis < 2; axis++ {
		out[axis] = Interpolate(v0, v1, 0, p0[axis], p1[axis])
	}
	return out
}

// msqSegments maps a 4-bit square index (bits 0..3 set when BL, BR, TR,
// TL respectively are inside, counter-clockwise from BL) to the line
// segments to emit, each a pair of edge ids. Cases
// 5 and 10 are the ambiguous saddles: the split branch (center-average
// above theta) substitutes a different two-segment pairing than the
// unsplit branch, and per spec §9's open question the two tables'
// endpoint order is preserved exactly as the source gives it rather
// than normalised to match each other.
var msqSegments = [16][][2]int{
	0:  nil,
	1:  {{3, 0}},
	2:  {{0, 1}},
	3:  {{3, 1}},
	4:  {{1, 2}},
	5:  {{3, 0}, {1, 2}}, // unsplit default; split branch below
	6:  {{0, 2}},
	7:  {{3, 2}},
	8:  {{2, 3}},
	9:  {{2, 0}},
	10: {{0, 3}, {2, 1}}, // unsplit default; split branch below
	11: {{2, 1}},
	12: {{1, 3}},
	13: {{1, 0}},
	14: {{0, 3}},
	15: nil,
}

// msqSplit5 and msqSplit10 are the alternate saddle-split segment
// lists used when the cell-center average exceeds theta, copied
// verbatim-in-structure from ReadISurf::marching_squares's case 5 /
// case 10 branches (spec §9): note the endpoints are NOT given in the
// same relative order between the two cases.
var (
	msqSplit5  = [][2]int{{3, 2}, {1, 0}}
	msqSplit10 = [][2]int{{0, 1}, {3, 2}}
)

// Tessellate2D runs the marching-squares driver over one square
// (spec §4.4's 2D analogue), emitting line segments into store.
func Tessellate2D(store *surf.Store, sq *Square, groupMask uint32, typ int32) int {
	var idx uint8
	for bit, corner := range [4]int{sqBL, sqBR, sqTR, sqTL} {
		if sq.Values[corner] > 0 {
			idx |= 1 << bit
		}
	}
	segs := msqSegments[idx]
	if idx == 5 {
		avg := (sq.Values[sqBL] + sq.Values[sqBR] + sq.Values[sqTL] + sq.Values[sqTR]) / 4
		if avg > 0 {
			segs = msqSplit5
		}
	}
	if idx == 10 {
		avg := (sq.Values[sqBL] + sq.Values[sqBR] + sq.Values[sqTL] + sq.Values[sqTR]) / 4
		if avg > 0 {
			segs = msqSplit10
		}
	}
	n := 0
	for _, s := range segs {
		p0, p1 := sq.edgePoint(s[0]), sq.edgePoint(s[1])
		store.AddLine(surf.Line{
			P:          [2][2]float64{p1, p0},
			CellGlobal: sq.CellID,
			GroupMask:  groupMask,
			Type:       typ,
		})
		n++
	}
	return n
}
