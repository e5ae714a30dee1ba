package geometry

import "github.com/o0olele/trimesh-go/math32"

// Four-lane AABB helpers. A set of four boxes is stored as six Vector4
// values (min and max per axis, one lane per box), matching the layout of
// encoded tree nodes. An unused lane is marked with min > max and fails
// every test below.

// RayAABB4 returns the entry distance of the ray against four boxes, one
// lane at a time (slab method). A missed lane returns MaxFloat32.
func RayAABB4(origin, invDir math32.Vector3, minX, minY, minZ, maxX, maxY, maxZ math32.Vector4) math32.Vector4 {
	var out math32.Vector4
	for i := 0; i < 4; i++ {
		if minX[i] > maxX[i] || minY[i] > maxY[i] || minZ[i] > maxZ[i] {
			out[i] = math32.MaxFloat32
			continue
		}
		t1x := (minX[i] - origin.X) * invDir.X
		t2x := (maxX[i] - origin.X) * invDir.X
		t1y := (minY[i] - origin.Y) * invDir.Y
		t2y := (maxY[i] - origin.Y) * invDir.Y
		t1z := (minZ[i] - origin.Z) * invDir.Z
		t2z := (maxZ[i] - origin.Z) * invDir.Z

		tmin := math32.Max(math32.Max(math32.Min(t1x, t2x), math32.Min(t1y, t2y)), math32.Min(t1z, t2z))
		tmax := math32.Min(math32.Min(math32.Max(t1x, t2x), math32.Max(t1y, t2y)), math32.Max(t1z, t2z))

		if tmin > tmax || tmax < 0 {
			out[i] = math32.MaxFloat32
		} else {
			out[i] = math32.Max(tmin, 0)
		}
	}
	return out
}

// AABB4Scale scales four boxes component-wise in place. Negative scale
// components swap the affected min and max lanes so the boxes stay sorted.
// Unused lanes (min > max) keep their marker instead of being re-sorted
// into a valid-looking box.
func AABB4Scale(scale math32.Vector3, minX, minY, minZ, maxX, maxY, maxZ *math32.Vector4) {
	valid := AABB4Valid(*minX, *minY, *minZ, *maxX, *maxY, *maxZ)
	scaleAxis := func(s float32, lo, hi *math32.Vector4) {
		a := lo.Mul(s)
		b := hi.Mul(s)
		*lo = a.Min(b)
		*hi = a.Max(b)
	}
	scaleAxis(scale.X, minX, maxX)
	scaleAxis(scale.Y, minY, maxY)
	scaleAxis(scale.Z, minZ, maxZ)
	for i := 0; i < 4; i++ {
		if valid[i] == 0 {
			minX[i], minY[i], minZ[i] = math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32
			maxX[i], maxY[i], maxZ[i] = -math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32
		}
	}
}

// AABB4EnlargeExtent grows four boxes by a half extent on every side
// (Minkowski sum with a centered box).
func AABB4EnlargeExtent(extent math32.Vector3, minX, minY, minZ, maxX, maxY, maxZ *math32.Vector4) {
	*minX = minX.Add(-extent.X)
	*minY = minY.Add(-extent.Y)
	*minZ = minZ.Add(-extent.Z)
	*maxX = maxX.Add(extent.X)
	*maxY = maxY.Add(extent.Y)
	*maxZ = maxZ.Add(extent.Z)
}

// AABB4Valid returns a mask of the lanes that hold a real box (min <= max
// on all axes).
func AABB4Valid(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4) math32.UVector4 {
	var mask math32.UVector4
	for i := 0; i < 4; i++ {
		if minX[i] <= maxX[i] && minY[i] <= maxY[i] && minZ[i] <= maxZ[i] {
			mask[i] = 1
		}
	}
	return mask
}

// AABB4OverlapsOrientedBox tests four boxes against an oriented box, one
// lane at a time. Lanes with min > max report no overlap.
func AABB4OverlapsOrientedBox(box *OrientedBox, minX, minY, minZ, maxX, maxY, maxZ math32.Vector4) math32.UVector4 {
	var mask math32.UVector4
	for i := 0; i < 4; i++ {
		if minX[i] > maxX[i] || minY[i] > maxY[i] || minZ[i] > maxZ[i] {
			continue
		}
		aabb := AABB{
			Min: math32.Vector3{X: minX[i], Y: minY[i], Z: minZ[i]},
			Max: math32.Vector3{X: maxX[i], Y: maxY[i], Z: maxZ[i]},
		}
		if box.Overlaps(aabb) {
			mask[i] = 1
		}
	}
	return mask
}
