package isurf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitSwap_Involution(t *testing.T) {
	for i := 0; i < 256; i++ {
		idx := uint8(i)
		assert.Equal(t, idx, bitSwap(bitSwap(idx)))
	}
}

func TestBitSwap_SwapsExpectedBits(t *testing.T) {
	assert.Equal(t, uint8(1<<3), bitSwap(1<<2))
	assert.Equal(t, uint8(1<<2), bitSwap(1<<3))
	assert.Equal(t, uint8(1<<7), bitSwap(1<<6))
	assert.Equal(t, uint8(1<<6), bitSwap(1<<7))
}

func TestClassify_EmptyAndFull(t *testing.T) {
	assert.Equal(t, Icase0, Classify(0x00))
	assert.Equal(t, Icase0, Classify(0xFF))
}

func TestClassify_SingleCorner(t *testing.T) {
	assert.Equal(t, Icase1, Classify(1<<cornerBLL))
}

func TestClassify_EdgeAdjacentPair(t *testing.T) {
	assert.Equal(t, Icase2, Classify(1<<cornerBLL|1<<cornerBLR))
}

func TestClassify_FaceDiagonalPairIsAmbiguous(t *testing.T) {
	assert.Equal(t, Icase3, Classify(1<<cornerBLL|1<<cornerBUR))
}

func TestClassify_SpaceDiagonalPairIsAmbiguous(t *testing.T) {
	assert.Equal(t, Icase4, Classify(1<<cornerBLL|1<<cornerTUR))
}

func TestClassify_CheckerboardIsCase13(t *testing.T) {
	idx := uint8(1<<cornerBLL | 1<<cornerBUR | 1<<cornerTLR | 1<<cornerTUL)
	assert.Equal(t, Icase13, Classify(idx))
	// case 13 is self-complementary under the cube's symmetry group.
	comp := ^idx & 0xFF
	assert.Equal(t, Icase13, Classify(comp))
}

func TestClassify_TwoByTwoAdjacentPairsAreEdgeCase(t *testing.T) {
	assert.Equal(t, Icase2, Classify(1<<cornerTLL|1<<cornerTLR))
}
