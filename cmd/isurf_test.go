package cmd

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGridFile(t *testing.T, nx, ny, nz int, samples []byte) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(nx+1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(ny+1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(nz+1)))
	buf.Write(samples)
	path := filepath.Join(t.TempDir(), "grid.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func resetISurfFlags() {
	optGroup, optTypeFile, optStoreFixID = "", "", ""
	opt2D, optPlot, optProfile, optSamplePerf = false, false, false, false
	optRanks = 0
}

func TestRunISurf_EmptyFieldSucceedsWithNoSurface(t *testing.T) {
	resetISurfFlags()
	samples := make([]byte, 3*3*3)
	path := writeGridFile(t, 2, 2, 2, samples)
	optRanks = 1
	err := runISurf(isurfCmd, []string{"wall", "2", "2", "2", path, "128.5"})
	require.NoError(t, err)
}

func TestRunISurf_RejectsIntegerThreshold(t *testing.T) {
	resetISurfFlags()
	samples := make([]byte, 3*3*3)
	path := writeGridFile(t, 2, 2, 2, samples)
	err := runISurf(isurfCmd, []string{"wall", "2", "2", "2", path, "128"})
	assert.Error(t, err)
}

func TestRunISurf_RejectsThresholdOutOfRange(t *testing.T) {
	resetISurfFlags()
	samples := make([]byte, 3*3*3)
	path := writeGridFile(t, 2, 2, 2, samples)
	err := runISurf(isurfCmd, []string{"wall", "2", "2", "2", path, "255.5"})
	assert.Error(t, err)
}

func TestRunISurf_Rejects2DWithNonUnitNz(t *testing.T) {
	resetISurfFlags()
	opt2D = true
	samples := make([]byte, 3*3)
	path := writeGridFile(t, 2, 2, 2, samples)
	err := runISurf(isurfCmd, []string{"wall", "2", "2", "2", path, "128.5"})
	assert.Error(t, err)
}

func TestRunISurf_BoundaryViolationPropagates(t *testing.T) {
	resetISurfFlags()
	samples := make([]byte, 3*3*3)
	samples[0] = 200 // corner (0,0,0) is on the domain boundary
	path := writeGridFile(t, 2, 2, 2, samples)
	optRanks = 1
	err := runISurf(isurfCmd, []string{"wall", "2", "2", "2", path, "128.5"})
	assert.Error(t, err)
}

func TestRunISurf_DistributesAcrossMultipleRanks(t *testing.T) {
	resetISurfFlags()
	nx, ny, nz := 4, 1, 1
	samples := make([]byte, (nx+1)*(ny+1)*(nz+1))
	path := writeGridFile(t, nx, ny, nz, samples)
	optRanks = 2
	err := runISurf(isurfCmd, []string{"wall", "4", "1", "1", path, "128.5"})
	require.NoError(t, err)
}
