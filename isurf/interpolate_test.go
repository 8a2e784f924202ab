package isurf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate_Midpoint(t *testing.T) {
	got := Interpolate(-1, 1, 0, 0, 10)
	assert.InDelta(t, 5, got, 1e-9)
}

func TestInterpolate_ClampsToExtent(t *testing.T) {
	got := Interpolate(-5, -1, 0, 0, 10)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 10.0)
}

func TestInterpolate_DegenerateEdgeReturnsLo(t *testing.T) {
	got := Interpolate(3, 3, 0, 2, 8)
	assert.Equal(t, 2.0, got)
}

func TestInterpolate_Idempotent(t *testing.T) {
	a := Interpolate(-2, 4, 1, 0, 6)
	b := Interpolate(-2, 4, 1, 0, 6)
	assert.Equal(t, a, b)
}
