package isurf

import "math"

// epsilon is the magnitude threshold below which a face or interior
// sign test is treated as degenerate, per spec §4.3's numeric policy.
const epsilon = 1e-16

// testFace implements ReadISurf::test_face: for a signed face code
// face in {-6..-1, 1..6} (1-based |face| indexes cubeFaces), fetch the
// face's four iso-shifted corner values in canonical winding A,B,C,D
// and decide whether the bilinear interpolant on that face's diagonals
// crosses the iso-level with the requested polarity.
func testFace(face int, v [8]float64) bool {
	idx := face
	sign := 1
	if idx < 0 {
		idx = -idx
		sign = -1
	}
	f := cubeFaces[idx-1]
	A, B, C, D := v[f[0]], v[f[1]], v[f[2]], v[f[3]]
	diff := A*C - B*D
	if math.Abs(diff) < epsilon {
		return sign >= 0
	}
	return float64(sign)*A*diff >= 0
}

// cornerSplit unpacks v into the eight SPARTA-named corner values in
// the order read_isurf.cpp's formulas use them (v000..v111, digit
// order x,y,z), via the correspondence to our own cornerBLL..cornerTUR
// indexing established in tables.go: x is the low bit, y the middle
// bit, z the high bit of a corner index, and read_isurf.cpp's v_xyz
// subscripts are literally (x,y,z) in that digit order.
func cornerSplit(v [8]float64) (v000, v001, v010, v011, v100, v101, v110, v111 float64) {
	return v[cornerBLL], v[cornerTLL], v[cornerBUL], v[cornerTUL],
		v[cornerBLR], v[cornerTLR], v[cornerBUR], v[cornerTUR]
}

// testInterior implements ReadISurf::test_interior's icase 4/10
// branch: the only branch reachable here, since icase 6/7/12/13 are
// resolved by modifiedTestInterior/interiorTestCase13 instead (see
// Tessellate3D's dispatch) — the original's 6/7/12/13 branch looks up
// its reference edge from a config-indexed tiling table that has no
// counterpart in this tree (tables.go), so it is not transcribed here.
// s is the requested polarity (+7 interior-empty, -7 interior-full).
func testInterior(s int, v [8]float64) bool {
	v000, v001, v010, v011, v100, v101, v110, v111 := cornerSplit(v)

	a := (v100-v000)*(v111-v011) - (v110-v010)*(v101-v001)
	b := v011*(v100-v000) + v000*(v111-v011) - v001*(v110-v010) - v010*(v101-v001)
	t := -b / (2 * a)
	if t < 0 || t > 1 {
		return s > 0
	}

	At := v000 + (v100-v000)*t
	Bt := v010 + (v110-v010)*t
	Ct := v011 + (v111-v011)*t
	Dt := v001 + (v101-v001)*t

	test := 0
	if At >= 0 {
		test++
	}
	if Bt >= 0 {
		test += 2
	}
	if Ct >= 0 {
		test += 4
	}
	if Dt >= 0 {
		test += 8
	}
	switch test {
	case 5:
		if At*Ct-Bt*Dt < epsilon {
			return s > 0
		}
	case 10:
		if At*Ct-Bt*Dt >= epsilon {
			return s > 0
		}
	case 7, 11, 13, 14, 15:
		return s < 0
	default: // 0,1,2,3,4,6,8,9,12
		return s > 0
	}
	return s < 0
}

// ambiguousFaces returns the 1-based cubeFaces ids whose four corners
// show the diagonal-ambiguity pattern (two opposite corners inside,
// the other two outside) — the geometric condition the original's
// config-indexed amb_face table entries (test6[config][0],
// test10[config][0], test12[config][0..1]) pick out without needing a
// table: any face with this pattern is a valid seed for
// interiorAmbiguity's edge search, the same diagonal test facePairing
// already uses to detect an ambiguous face's own two tilings.
func ambiguousFaces(v [8]float64) []int {
	var out []int
	for fi, f := range cubeFaces {
		var idx uint8
		for k, corner := range f {
			if v[corner] > 0 {
				idx |= 1 << uint(k)
			}
		}
		if idx == 0x5 || idx == 0xA {
			out = append(out, fi+1)
		}
	}
	return out
}

// modifiedTestInterior implements ReadISurf::modified_test_interior
// for icase 6, 7, 12 — the icases Tessellate3D actually routes here
// (icase 4's branch is equally table-free in the original, hardcoding
// amb_face 1,2,5 exactly as icase 7 does, but icase 4 is never
// dispatched to this function in this tree and is therefore omitted).
// icase 6 and 12 substitute ambiguousFaces for the original's
// config-indexed amb_face lookup, since tables.go carries no such
// table; icase 7 is unchanged from the original, which needs no table
// at all.
func modifiedTestInterior(s int, icase Icase, v [8]float64) bool {
	switch icase {
	case Icase7:
		s = -s
		interAmb := 0
		for _, face := range [3]int{1, 2, 5} {
			edge := interiorAmbiguity(face, s, v)
			interAmb += interiorAmbiguityVerification(edge, v)
		}
		return interAmb != 0

	case Icase6:
		faces := ambiguousFaces(v)
		if len(faces) == 0 {
			return false
		}
		edge := interiorAmbiguity(faces[0], s, v)
		return interiorAmbiguityVerification(edge, v) != 0

	case Icase12:
		interAmb := 0
		for _, face := range ambiguousFaces(v) {
			edge := interiorAmbiguity(face, s, v)
			interAmb += interiorAmbiguityVerification(edge, v)
		}
		return interAmb != 0
	}
	return false
}

// interiorAmbiguity implements ReadISurf::interior_ambiguity verbatim:
// ambFace selects one of three corner-pair groups, and within that
// group the last pair whose values (scaled by s) are both positive
// wins the edge — later matches overwrite earlier ones, exactly as the
// original's unbroken if-chain does.
func interiorAmbiguity(ambFace, s int, v [8]float64) int {
	v000, v001, v010, v011, v100, v101, v110, v111 := cornerSplit(v)
	fs := float64(s)
	edge := -1
	switch ambFace {
	case 1, 3:
		if v001*fs > 0 && v110*fs > 0 {
			edge = 4
		}
		if v000*fs > 0 && v111*fs > 0 {
			edge = 5
		}
		if v010*fs > 0 && v101*fs > 0 {
			edge = 6
		}
		if v011*fs > 0 && v100*fs > 0 {
			edge = 7
		}
	case 2, 4:
		if v001*fs > 0 && v110*fs > 0 {
			edge = 0
		}
		if v011*fs > 0 && v100*fs > 0 {
			edge = 1
		}
		if v010*fs > 0 && v101*fs > 0 {
			edge = 2
		}
		if v000*fs > 0 && v111*fs > 0 {
			edge = 3
		}
	case 5, 6, 0:
		if v000*fs > 0 && v111*fs > 0 {
			edge = 8
		}
		if v001*fs > 0 && v110*fs > 0 {
			edge = 9
		}
		if v011*fs > 0 && v100*fs > 0 {
			edge = 10
		}
		if v010*fs > 0 && v101*fs > 0 {
			edge = 11
		}
	}
	return edge
}

// interiorAmbiguityVerification implements
// ReadISurf::interior_ambiguity_verification verbatim: edge selects one
// of twelve literal quadratic coefficient sets (distinct from, though
// shaped like, testInterior's), each checked against the unit interval
// and then sign-classified via the same At*Ct-Bt*Dt saddle test.
// Returns 0 ("not empty" — the edge genuinely bridges) or 1 ("empty").
func interiorAmbiguityVerification(edge int, v [8]float64) int {
	v000, v001, v010, v011, v100, v101, v110, v111 := cornerSplit(v)

	switch edge {
	case 0:
		a := (v000-v001)*(v110-v111) - (v100-v101)*(v010-v011)
		b := v111*(v000-v001) + v001*(v110-v111) - v011*(v100-v101) - v101*(v010-v011)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v001 + (v000-v001)*t
		Bt := v101 + (v100-v101)*t
		Ct := v111 + (v110-v111)*t
		Dt := v011 + (v010-v011)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 1:
		a := (v010-v011)*(v100-v101) - (v000-v001)*(v110-v111)
		b := v101*(v010-v011) + v011*(v100-v101) - v111*(v000-v001) - v001*(v110-v111)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v011 + (v010-v011)*t
		Bt := v001 + (v000-v001)*t
		Ct := v101 + (v100-v101)*t
		Dt := v111 + (v110-v111)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 2:
		a := (v011-v010)*(v101-v100) - (v111-v110)*(v001-v000)
		b := v100*(v011-v010) + v010*(v101-v100) - v000*(v111-v110) - v110*(v001-v000)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v010 + (v011-v010)*t
		Bt := v110 + (v111-v110)*t
		Ct := v100 + (v101-v100)*t
		Dt := v000 + (v001-v000)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 3:
		a := (v001-v000)*(v111-v110) - (v011-v010)*(v101-v100)
		b := v110*(v001-v000) + v000*(v111-v110) - v100*(v011-v010) - v010*(v101-v100)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v000 + (v001-v000)*t
		Bt := v010 + (v011-v010)*t
		Ct := v110 + (v111-v110)*t
		Dt := v100 + (v101-v100)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 4:
		a := (v011-v001)*(v110-v100) - (v010-v000)*(v111-v101)
		b := v100*(v011-v001) + v001*(v110-v100) - v101*(v010-v000) - v000*(v111-v101)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v001 + (v011-v001)*t
		Bt := v000 + (v010-v000)*t
		Ct := v100 + (v110-v100)*t
		Dt := v101 + (v111-v101)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 5:
		a := (v010-v000)*(v111-v101) - (v011-v001)*(v110-v100)
		b := v101*(v010-v000) + v000*(v111-v101) - v100*(v011-v001) - v001*(v110-v100)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v000 + (v010-v000)*t
		Bt := v001 + (v011-v001)*t
		Ct := v101 + (v111-v101)*t
		Dt := v100 + (v110-v100)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 6:
		a := (v000-v010)*(v101-v111) - (v100-v110)*(v001-v011)
		b := v111*(v000-v010) + v010*(v101-v111) - v011*(v100-v110) - v110*(v001-v011)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v010 + (v000-v010)*t
		Bt := v110 + (v100-v110)*t
		Ct := v111 + (v101-v111)*t
		Dt := v011 + (v001-v011)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 7:
		a := (v001-v011)*(v100-v110) - (v000-v010)*(v101-v111)
		b := v110*(v001-v011) + v011*(v100-v110) - v111*(v000-v010) - v010*(v101-v111)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v011 + (v001-v011)*t
		Bt := v010 + (v000-v010)*t
		Ct := v110 + (v100-v110)*t
		Dt := v111 + (v101-v111)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 8:
		a := (v100-v000)*(v111-v011) - (v110-v010)*(v101-v001)
		b := v011*(v100-v000) + v000*(v111-v011) - v001*(v110-v010) - v010*(v101-v001)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v000 + (v100-v000)*t
		Bt := v010 + (v110-v010)*t
		Ct := v011 + (v111-v011)*t
		Dt := v001 + (v101-v001)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 9:
		a := (v101-v001)*(v110-v010) - (v100-v000)*(v111-v011)
		b := v010*(v101-v001) + v001*(v110-v010) - v011*(v100-v000) - v000*(v111-v011)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v001 + (v101-v001)*t
		Bt := v000 + (v100-v000)*t
		Ct := v010 + (v110-v010)*t
		Dt := v011 + (v111-v011)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 10:
		a := (v111-v011)*(v100-v000) - (v101-v001)*(v110-v010)
		b := v000*(v111-v011) + v011*(v100-v000) - v010*(v101-v001) - v001*(v110-v010)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v011 + (v111-v011)*t
		Bt := v001 + (v101-v001)*t
		Ct := v000 + (v100-v000)*t
		Dt := v010 + (v110-v010)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	case 11:
		a := (v110-v010)*(v101-v001) - (v111-v011)*(v100-v000)
		b := v001*(v110-v010) + v010*(v101-v001) - v000*(v111-v011) - v011*(v100-v000)
		if a > 0 {
			return 1
		}
		t := -b / (2 * a)
		if t < 0 || t > 1 {
			return 1
		}
		At := v010 + (v110-v010)*t
		Bt := v011 + (v111-v011)*t
		Ct := v001 + (v101-v001)*t
		Dt := v000 + (v100-v000)*t
		if verify := At*Ct - Bt*Dt; verify > 0 {
			return 0
		} else if verify < 0 {
			return 1
		}
	}
	return 1
}

// interiorTestCase13 implements ReadISurf::interior_test_case13
// verbatim: both roots of the diagonal quadratic are found, and if
// both lie strictly in (0,1) their induced bilinear saddle coordinates
// are checked against the unit square. Returns true if the interior is
// empty (the two surface sheets stay separate); false if the interior
// bridges them. math.Sqrt(negative) and division by a near-zero
// leading coefficient produce NaN/Inf the same way C++'s sqrt/division
// do, so the out-of-range comparisons below fail closed onto the final
// "empty" return without an explicit guard, matching the original.
func interiorTestCase13(v [8]float64) bool {
	v000, v001, v010, v011, v100, v101, v110, v111 := cornerSplit(v)

	a := (v000-v001)*(v110-v111) - (v100-v101)*(v010-v011)
	b := v111*(v000-v001) + v001*(v110-v111) - v011*(v100-v101) - v101*(v010-v011)
	c := v001*v111 - v101*v011
	delta := b*b - 4*a*c

	t1 := (-b + math.Sqrt(delta)) / (2 * a)
	t2 := (-b - math.Sqrt(delta)) / (2 * a)

	if t1 < 1 && t1 > 0 && t2 < 1 && t2 > 0 {
		At1 := v001 + (v000-v001)*t1
		Bt1 := v101 + (v100-v101)*t1
		Ct1 := v111 + (v110-v111)*t1
		Dt1 := v011 + (v010-v011)*t1
		x1 := (At1 - Dt1) / (At1 + Ct1 - Bt1 - Dt1)
		y1 := (At1 - Bt1) / (At1 + Ct1 - Bt1 - Dt1)

		At2 := v001 + (v000-v001)*t2
		Bt2 := v101 + (v100-v101)*t2
		Ct2 := v111 + (v110-v111)*t2
		Dt2 := v011 + (v010-v011)*t2
		x2 := (At2 - Dt2) / (At2 + Ct2 - Bt2 - Dt2)
		y2 := (At2 - Bt2) / (At2 + Ct2 - Bt2 - Dt2)

		if x1 < 1 && x1 > 0 && x2 < 1 && x2 > 0 && y1 < 1 && y1 > 0 && y2 < 1 && y2 > 0 {
			return false
		}
	}
	return true
}

func edgeBetween(a, b int) int {
	for id, e := range cubeEdges {
		if (e[0] == a && e[1] == b) || (e[0] == b && e[1] == a) {
			return id
		}
	}
	return -1
}
