package isurf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundaryViolationError_Message(t *testing.T) {
	err := &BoundaryViolationError{I: 1, J: 2, K: 3, Value: 5}
	assert.Contains(t, err.Error(), "(1,2,3)")
}

func TestFaceInvariantError_Message(t *testing.T) {
	err := &FaceInvariantError{CellLocal: 3, Face: 1, Count: 1}
	assert.Contains(t, err.Error(), "local cell 3")
}
