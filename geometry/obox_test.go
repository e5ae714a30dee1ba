package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/o0olele/trimesh-go/math32"
)

func unitAABB() AABB {
	return AABB{
		Min: math32.Vector3{X: 0, Y: 0, Z: 0},
		Max: math32.Vector3{X: 1, Y: 1, Z: 1},
	}
}

func TestOrientedBoxOverlapsAxisAligned(t *testing.T) {
	box := NewOrientedBox(math32.Matrix4Identity(), unitAABB())

	overlap := unitAABB()
	assert.True(t, box.Overlaps(overlap))

	apart := AABB{
		Min: math32.Vector3{X: 3, Y: 0, Z: 0},
		Max: math32.Vector3{X: 4, Y: 1, Z: 1},
	}
	assert.False(t, box.Overlaps(apart))

	touching := AABB{
		Min: math32.Vector3{X: 1, Y: 0, Z: 0},
		Max: math32.Vector3{X: 2, Y: 1, Z: 1},
	}
	assert.True(t, box.Overlaps(touching))
}

func TestOrientedBoxOverlapsRotated(t *testing.T) {
	// A box rotated 45 degrees around Z, centered at (2.2, 0, 0.5): its
	// corner reaches past x = 2.2 - sqrt(0.5) ~ 1.49, short of the unit
	// box, so no overlap; moved closer it overlaps.
	rot := math32.QuaternionFromAxisAngle(math32.Vector3{Z: 1}, 3.14159265/4)

	far := NewOrientedBox(
		math32.Matrix4RotationTranslation(rot, math32.Vector3{X: 2.2, Y: 0, Z: 0.5}),
		AABB{Min: math32.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, Max: math32.Vector3{X: 0.5, Y: 0.5, Z: 0.5}})
	assert.False(t, far.Overlaps(unitAABB()))

	near := NewOrientedBox(
		math32.Matrix4RotationTranslation(rot, math32.Vector3{X: 1.5, Y: 0.5, Z: 0.5}),
		AABB{Min: math32.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, Max: math32.Vector3{X: 0.5, Y: 0.5, Z: 0.5}})
	assert.True(t, near.Overlaps(unitAABB()))
}

func TestAABB4ScaleKeepsUnusedLanes(t *testing.T) {
	// Lane 1 carries the unused marker (min > max); scaling must not turn
	// it into a valid-looking box, or the walker would chase its bogus
	// properties word.
	minX := math32.Vector4{0, 65504, 0, 0}
	minY := math32.Vector4{0, 65504, 0, 0}
	minZ := math32.Vector4{0, 65504, 0, 0}
	maxX := math32.Vector4{1, -65504, 1, 1}
	maxY := math32.Vector4{1, -65504, 1, 1}
	maxZ := math32.Vector4{1, -65504, 1, 1}

	for _, scale := range []math32.Vector3{
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 3, Z: 4},
		{X: -1, Y: 1, Z: 1},
	} {
		mnX, mnY, mnZ := minX, minY, minZ
		mxX, mxY, mxZ := maxX, maxY, maxZ
		AABB4Scale(scale, &mnX, &mnY, &mnZ, &mxX, &mxY, &mxZ)

		mask := AABB4Valid(mnX, mnY, mnZ, mxX, mxY, mxZ)
		assert.Equalf(t, math32.UVector4{1, 0, 1, 1}, mask, "scale %v", scale)
		assert.Greaterf(t, mnX[1], mxX[1], "scale %v", scale)
	}
}

func TestAABB4ValidMasksUnusedLanes(t *testing.T) {
	minX := math32.Vector4{0, 5, 0, 0}
	maxX := math32.Vector4{1, -5, 1, 1}
	ones := math32.Vector4{0, 0, 0, 0}
	tops := math32.Vector4{1, 1, 1, 1}

	mask := AABB4Valid(minX, ones, ones, maxX, tops, tops)
	assert.Equal(t, math32.UVector4{1, 0, 1, 1}, mask)
}
