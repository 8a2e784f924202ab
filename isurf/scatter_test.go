package isurf

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/gridflow/isurf/grid"
	"github.com/gridflow/isurf/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGridFile(t *testing.T, nx, ny, nz int, is2D bool, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(nx+1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(ny+1)))
	if !is2D {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(nz+1)))
	}
	buf.Write(body)
	return buf.Bytes()
}

func singleCellGrid(nx, ny, nz int) (*grid.Grid, *grid.CellHash) {
	g := grid.NewGrid("t", nx, ny, nz, false)
	hash := grid.NewCellHash(nx, ny, nz)
	local := int32(0)
	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				g.AddCell(int(local), int(local), [3]float64{}, [3]float64{})
				hash.Set(ix, iy, iz, local)
				local++
			}
		}
	}
	return g, hash
}

func TestReadGridHeader_AcceptsMatchingExtent(t *testing.T) {
	hdr := buildGridFile(t, 2, 2, 2, false, nil)
	_, err := ReadGridHeader(bytes.NewReader(hdr[:12]), 2, 2, 2, false)
	assert.NoError(t, err)
}

func TestReadGridHeader_RejectsMismatchedExtent(t *testing.T) {
	hdr := buildGridFile(t, 2, 2, 2, false, nil)
	_, err := ReadGridHeader(bytes.NewReader(hdr[:12]), 3, 2, 2, false)
	assert.Error(t, err)
}

func TestReadGridHeader_SingleLayer3DGridStaysThreeDimensional(t *testing.T) {
	// Nz==1 does not by itself make this a 2D grid file; with is2D=false
	// the header must still carry and validate all three extents.
	hdr := buildGridFile(t, 4, 1, 1, false, nil)
	_, err := ReadGridHeader(bytes.NewReader(hdr[:12]), 4, 1, 1, false)
	assert.NoError(t, err)
}

func TestScatter_SingleRankDistributesCorners(t *testing.T) {
	nx, ny, nz := 1, 1, 1
	body := make([]byte, (nx+1)*(ny+1)*(nz+1))
	grid3, hash := singleCellGrid(nx, ny, nz)
	fileBytes := buildGridFile(t, nx, ny, nz, false, body)

	comm := transport.NewCommunicator(1)
	corners := [][]float64{make([]float64, 8)}
	err := Scatter(comm, 0, 0, bytes.NewReader(fileBytes[12:]), hash, grid3, corners)
	require.NoError(t, err)
	for _, v := range corners[0] {
		assert.Equal(t, 0.0, v)
	}
}

func TestScatter_BoundaryViolationAborts(t *testing.T) {
	nx, ny, nz := 1, 1, 1
	body := make([]byte, (nx+1)*(ny+1)*(nz+1))
	body[0] = 1 // corner (0,0,0) is on the boundary and must be zero
	grid3, hash := singleCellGrid(nx, ny, nz)
	fileBytes := buildGridFile(t, nx, ny, nz, false, body)

	comm := transport.NewCommunicator(1)
	corners := [][]float64{make([]float64, 8)}
	err := Scatter(comm, 0, 0, bytes.NewReader(fileBytes[12:]), hash, grid3, corners)
	assert.Error(t, err)
	var boundaryErr *BoundaryViolationError
	assert.ErrorAs(t, err, &boundaryErr)
	aborted, _ := comm.IsAborted()
	assert.True(t, aborted)
}

func TestScatter_MultiRankAllReceiveSameCorners(t *testing.T) {
	const np = 2
	nx, ny, nz := 1, 1, 1
	body := make([]byte, (nx+1)*(ny+1)*(nz+1))
	for i := range body {
		body[i] = 0
	}
	fileBytes := buildGridFile(t, nx, ny, nz, false, body)

	comm := transport.NewCommunicator(np)
	var wg sync.WaitGroup
	wg.Add(np)
	results := make([][]float64, np)
	for rank := 0; rank < np; rank++ {
		go func(rank int) {
			defer wg.Done()
			g, hash := singleCellGrid(nx, ny, nz)
			corners := [][]float64{make([]float64, 8)}
			var r *bytes.Reader
			if rank == 0 {
				r = bytes.NewReader(fileBytes[12:])
			}
			err := Scatter(comm, rank, 0, r, hash, g, corners)
			assert.NoError(t, err)
			results[rank] = corners[0]
		}(rank)
	}
	wg.Wait()
	assert.Equal(t, results[0], results[1])
}
