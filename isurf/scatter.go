package isurf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gridflow/isurf/grid"
	"github.com/gridflow/isurf/transport"
)

// ChunkSize is the default payload chunk size for the broadcast read
// in spec §4.5 step 3.
const ChunkSize = 8192

// GridHeader is the little-endian header of a corner-value grid file
// (spec §6): Nx+1,Ny+1[,Nz+1].
type GridHeader struct {
	Dims []int32
}

// ReadGridHeader reads and validates a grid file's header against the
// requested extents, failing fast on mismatch (spec §4.5 step 1).
// is2D must match the grid's own Is2D (Nz==1 alone does not imply 2D:
// a single-layer 3D grid is a legitimate distinct shape).
func ReadGridHeader(r io.Reader, wantNx, wantNy, wantNz int, is2D bool) (*GridHeader, error) {
	dimension := 3
	if is2D {
		dimension = 2
	}
	dims := make([]int32, dimension)
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("isurf: reading grid header: %w", err)
	}
	want := []int32{int32(wantNx + 1), int32(wantNy + 1)}
	if dimension == 3 {
		want = append(want, int32(wantNz+1))
	}
	for i, d := range dims {
		if d != want[i] {
			return nil, fmt.Errorf("isurf: grid file extent %v disagrees with requested %v", dims, want)
		}
	}
	return &GridHeader{Dims: dims}, nil
}

// Scatter runs the corner-scatter protocol (spec §4.5) on rank,
// reading grid from a coordinator-only reader (nil on every rank but
// root) and distributing corner values into cells via hash.
//
// The broadcast idiom (read a chunk on root, send it through
// transport.Communicator.Bcast, every rank walks the same bytes) and
// the binary header/payload layout follow DG3D/mesh/gmsh_reader_2.go's
// encoding/binary.Read + bufio pattern.
func Scatter(comm *transport.Communicator, rank, root int, gridReader io.Reader, hash *grid.CellHash, g *grid.Grid, corners [][]float64) error {
	nx, ny, nz := int32(g.Nx), int32(g.Ny), int32(g.Nz)

	var hdrBytes []byte
	if rank == root {
		var buf bytes.Buffer
		for _, d := range dimsFor(g) {
			_ = binary.Write(&buf, binary.LittleEndian, d)
		}
		hdrBytes = buf.Bytes()
	}
	hdrBytes = comm.Bcast(rank, root, hdrBytes)
	if _, err := ReadGridHeader(bytes.NewReader(hdrBytes), g.Nx, g.Ny, g.Nz, g.Is2D); err != nil {
		comm.Abort(err)
		return err
	}

	var br *bufio.Reader
	if rank == root {
		br = bufio.NewReader(gridReader)
	}

	total := int64(nx+1) * int64(ny+1)
	if !g.Is2D {
		total *= int64(nz + 1)
	}
	var read int64
	for read < total {
		n := int64(ChunkSize)
		if total-read < n {
			n = total - read
		}
		var chunk []byte
		if rank == root {
			chunk = make([]byte, n)
			if _, err := io.ReadFull(br, chunk); err != nil {
				err = fmt.Errorf("isurf: reading grid payload: %w", err)
				comm.Abort(err)
				return err
			}
		}
		chunk = comm.Bcast(rank, root, chunk)
		if err := applyChunk(chunk, read, g, hash, corners); err != nil {
			comm.Abort(err)
			return err
		}
		read += n
	}
	return nil
}

func dimsFor(g *grid.Grid) []int32 {
	if g.Is2D {
		return []int32{int32(g.Nx + 1), int32(g.Ny + 1)}
	}
	return []int32{int32(g.Nx + 1), int32(g.Ny + 1), int32(g.Nz + 1)}
}

// applyChunk walks one chunk of the payload starting at global byte
// offset start, scattering each sample to every owned adjacent cell
// and enforcing the boundary-zero invariant.
func applyChunk(chunk []byte, start int64, g *grid.Grid, hash *grid.CellHash, corners [][]float64) error {
	nx, ny, nz := g.Nx, g.Ny, g.Nz
	for off, sample := range chunk {
		p := start + int64(off)
		pix := int(p % int64(nx+1))
		piy := int((p / int64(nx+1)) % int64(ny+1))
		piz := 0
		if !g.Is2D {
			piz = int(p / (int64(nx+1) * int64(ny+1)))
		}
		onBoundary := pix == 0 || pix == nx || piy == 0 || piy == ny || (!g.Is2D && (piz == 0 || piz == nz))
		if onBoundary && sample != 0 {
			return &BoundaryViolationError{I: pix, J: piy, K: piz, Value: sample}
		}
		scatterSample(pix, piy, piz, sample, g, hash, corners)
	}
	return nil
}

func scatterSample(pix, piy, piz int, sample byte, g *grid.Grid, hash *grid.CellHash, corners [][]float64) {
	zs := []int{0}
	if !g.Is2D {
		zs = []int{piz - 1, piz}
	}
	for _, ciz := range zs {
		if ciz < 0 || (!g.Is2D && ciz >= g.Nz) {
			continue
		}
		for ciy := piy - 1; ciy <= piy; ciy++ {
			if ciy < 0 || ciy >= g.Ny {
				continue
			}
			for cix := pix - 1; cix <= pix; cix++ {
				if cix < 0 || cix >= g.Nx {
					continue
				}
				local, ok := hash.Get(cix, ciy, ciz)
				if !ok {
					continue
				}
				sub := subIndex(pix, piy, piz, cix, ciy, ciz, g.Is2D)
				corners[local][sub] = float64(sample)
			}
		}
	}
}

// subIndex derives the canonical corner sub-index (spec §4.4 step 1
// ordering) from a corner's position relative to its owning cell.
func subIndex(pix, piy, piz, cix, ciy, ciz int, is2D bool) int {
	dx := pix - cix
	dy := piy - ciy
	if is2D {
		return dx + 2*dy
	}
	dz := piz - ciz
	return dx + 2*dy + 4*dz
}
