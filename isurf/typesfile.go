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

// TypesHeader is the little-endian header of a per-cell type file
// (spec §6): Nx,Ny[,Nz].
type TypesHeader struct {
	Dims []int32
}

// ReadTypesHeader reads and validates a types file's header against
// the requested extents. is2D must match the grid's own Is2D.
func ReadTypesHeader(r io.Reader, wantNx, wantNy, wantNz int, is2D bool) (*TypesHeader, error) {
	dimension := 3
	if is2D {
		dimension = 2
	}
	dims := make([]int32, dimension)
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("isurf: reading types header: %w", err)
	}
	want := []int32{int32(wantNx), int32(wantNy)}
	if dimension == 3 {
		want = append(want, int32(wantNz))
	}
	for i, d := range dims {
		if d != want[i] {
			return nil, fmt.Errorf("isurf: types file extent %v disagrees with requested %v", dims, want)
		}
	}
	return &TypesHeader{Dims: dims}, nil
}

// ScatterTypes broadcasts the per-cell type file (spec §6's `type
// <types-file>` option) and assigns each owned cell's Type field,
// overriding the command's default type. It follows Scatter's
// coordinator-reads/broadcast-chunk/every-rank-applies idiom, one
// int32 per cell instead of one byte per corner.
func ScatterTypes(comm *transport.Communicator, rank, root int, typesReader io.Reader, hash *grid.CellHash, g *grid.Grid) error {
	var hdrBytes []byte
	if rank == root {
		var buf bytes.Buffer
		dims := []int32{int32(g.Nx), int32(g.Ny)}
		if !g.Is2D {
			dims = append(dims, int32(g.Nz))
		}
		for _, d := range dims {
			_ = binary.Write(&buf, binary.LittleEndian, d)
		}
		hdrBytes = buf.Bytes()
	}
	hdrBytes = comm.Bcast(rank, root, hdrBytes)
	if _, err := ReadTypesHeader(bytes.NewReader(hdrBytes), g.Nx, g.Ny, g.Nz, g.Is2D); err != nil {
		comm.Abort(err)
		return err
	}

	var br *bufio.Reader
	if rank == root {
		br = bufio.NewReader(typesReader)
	}

	byLocal := make(map[int32]*grid.Cell, len(g.Cells))
	for i := range g.Cells {
		byLocal[int32(g.Cells[i].Local)] = &g.Cells[i]
	}

	nCells := int64(g.Nx) * int64(g.Ny)
	if !g.Is2D {
		nCells *= int64(g.Nz)
	}
	const chunkCells = ChunkSize / 4
	var read int64
	for read < nCells {
		n := int64(chunkCells)
		if nCells-read < n {
			n = nCells - read
		}
		var chunk []int32
		if rank == root {
			chunk = make([]int32, n)
			if err := binary.Read(br, binary.LittleEndian, &chunk); err != nil {
				err = fmt.Errorf("isurf: reading types payload: %w", err)
				comm.Abort(err)
				return err
			}
		}
		chunkBytes := int32SliceToBytes(chunk, int(n), rank, root, comm)
		applyTypesChunk(chunkBytes, read, g, hash, byLocal)
		read += n
	}
	return nil
}

// int32SliceToBytes broadcasts n little-endian int32 values (encoding
// chunk on the sending rank, decoding after Bcast on every rank) and
// returns the flat byte payload every rank can decode identically.
func int32SliceToBytes(chunk []int32, n, rank, root int, comm *transport.Communicator) []byte {
	var raw []byte
	if rank == root {
		buf := make([]byte, 4*n)
		for i, v := range chunk {
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
		}
		raw = buf
	}
	return comm.Bcast(rank, root, raw)
}

func applyTypesChunk(chunk []byte, start int64, g *grid.Grid, hash *grid.CellHash, byLocal map[int32]*grid.Cell) {
	nx, ny := g.Nx, g.Ny
	for off := 0; off+4 <= len(chunk); off += 4 {
		p := start + int64(off/4)
		v := int32(binary.LittleEndian.Uint32(chunk[off:]))
		cix := int(p % int64(nx))
		ciy := int((p / int64(nx)) % int64(ny))
		ciz := int(p / (int64(nx) * int64(ny)))
		local, ok := hash.Get(cix, ciy, ciz)
		if !ok {
			continue
		}
		if cell, ok := byLocal[local]; ok {
			cell.Type = v
		}
	}
}
