package geometry

import "github.com/o0olele/trimesh-go/math32"

// RayTriangle intersects a ray with a triangle (based on Möller–Trumbore).
// The direction is not normalized; the returned fraction is relative to its
// length, so fraction 1 is the end of the ray. The test is double sided.
// Returns MaxFloat32 when there is no hit with fraction >= 0.
func RayTriangle(origin, dir, v0, v1, v2 math32.Vector3) float32 {
	const eps = 1e-8
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -eps && det < eps {
		return math32.MaxFloat32
	}
	invDet := 1.0 / det
	tvec := origin.Sub(v0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return math32.MaxFloat32
	}
	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return math32.MaxFloat32
	}
	t := e2.Dot(qvec) * invDet
	if t < 0 {
		return math32.MaxFloat32
	}
	return t
}

// RayInvDirection precomputes the reciprocal of a ray direction for slab
// tests. Near-zero components are replaced by a huge value, which makes the
// slab test degenerate to an origin-inside-slab check.
func RayInvDirection(dir math32.Vector3) math32.Vector3 {
	inv := func(d float32) float32 {
		if math32.Abs(d) < 1e-20 {
			return 1e30
		}
		return 1.0 / d
	}
	return math32.Vector3{X: inv(dir.X), Y: inv(dir.Y), Z: inv(dir.Z)}
}

// RayAABB checks if the ray intersects with the AABB (slab method) and
// returns the entry distance along the ray, clamped to 0 when the origin is
// inside. Returns MaxFloat32 on a miss.
func RayAABB(origin, invDir math32.Vector3, aabb AABB) float32 {
	t1x := (aabb.Min.X - origin.X) * invDir.X
	t2x := (aabb.Max.X - origin.X) * invDir.X
	t1y := (aabb.Min.Y - origin.Y) * invDir.Y
	t2y := (aabb.Max.Y - origin.Y) * invDir.Y
	t1z := (aabb.Min.Z - origin.Z) * invDir.Z
	t2z := (aabb.Max.Z - origin.Z) * invDir.Z

	tmin := math32.Max(math32.Max(math32.Min(t1x, t2x), math32.Min(t1y, t2y)), math32.Min(t1z, t2z))
	tmax := math32.Min(math32.Min(math32.Max(t1x, t2x), math32.Max(t1y, t2y)), math32.Max(t1z, t2z))

	if tmin > tmax || tmax < 0 {
		return math32.MaxFloat32
	}
	return math32.Max(tmin, 0)
}
