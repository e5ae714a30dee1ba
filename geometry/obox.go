package geometry

import "github.com/o0olele/trimesh-go/math32"

// OrientedBox is a box with an arbitrary rotation and translation. The
// transform maps box-local coordinates (center at the origin) to the target
// space, the half extent is the box size in local coordinates.
type OrientedBox struct {
	Transform  math32.Matrix4
	HalfExtent math32.Vector3
}

// NewOrientedBox wraps an AABB transformed by m.
func NewOrientedBox(m math32.Matrix4, aabb AABB) OrientedBox {
	return OrientedBox{
		Transform:  m.Mul(math32.Matrix4Translation(aabb.Center())),
		HalfExtent: aabb.Extent(),
	}
}

// Overlaps checks the oriented box against an AABB using the separating
// axis test: the three AABB axes, the three box axes and their nine cross
// products.
func (b *OrientedBox) Overlaps(aabb AABB) bool {
	center := aabb.Center()
	halfSize := aabb.Extent()

	// Box center and axes relative to the AABB center.
	t := b.Transform.Translation().Sub(center)
	var axes [3]math32.Vector3
	for i := 0; i < 3; i++ {
		axes[i] = b.Transform.Axis(i)
	}

	testAxis := func(axis math32.Vector3) bool {
		lenSq := axis.LengthSquared()
		if lenSq < 1e-10 {
			return true
		}
		// Projection radius of both boxes on the axis.
		rA := math32.Abs(halfSize.X*axis.X) + math32.Abs(halfSize.Y*axis.Y) + math32.Abs(halfSize.Z*axis.Z)
		rB := math32.Abs(axes[0].Dot(axis))*b.HalfExtent.X +
			math32.Abs(axes[1].Dot(axis))*b.HalfExtent.Y +
			math32.Abs(axes[2].Dot(axis))*b.HalfExtent.Z
		return math32.Abs(t.Dot(axis)) <= rA+rB
	}

	// AABB face normals
	if !testAxis(math32.Vector3{X: 1}) || !testAxis(math32.Vector3{Y: 1}) || !testAxis(math32.Vector3{Z: 1}) {
		return false
	}

	// Box face normals
	for i := 0; i < 3; i++ {
		if !testAxis(axes[i]) {
			return false
		}
	}

	// Cross products of the axes of both boxes
	units := [3]math32.Vector3{{X: 1}, {Y: 1}, {Z: 1}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !testAxis(units[i].Cross(axes[j])) {
				return false
			}
		}
	}

	return true
}
