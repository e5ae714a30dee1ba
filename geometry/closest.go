package geometry

import "github.com/o0olele/trimesh-go/math32"

// closestPointOnLineSegment returns the point on segment [a, b] closest to point.
func closestPointOnLineSegment(a, b, point math32.Vector3) math32.Vector3 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}
	t := math32.Clamp(point.Sub(a).Dot(ab)/denom, 0, 1)
	return a.Add(ab.Mul(t))
}

// pointInTriangle checks if a point that lies in the triangle plane is
// inside the triangle (edge normal method).
func pointInTriangle(point, p0, p1, p2, normal math32.Vector3) bool {
	c0 := point.Sub(p0).Cross(p1.Sub(p0))
	c1 := point.Sub(p1).Cross(p2.Sub(p1))
	c2 := point.Sub(p2).Cross(p0.Sub(p2))
	return c0.Dot(normal) <= 0 && c1.Dot(normal) <= 0 && c2.Dot(normal) <= 0
}

// ClosestPointOnTriangle returns the point of the triangle (p0, p1, p2)
// closest to point.
func ClosestPointOnTriangle(point, p0, p1, p2 math32.Vector3) math32.Vector3 {
	normal := p1.Sub(p0).Cross(p2.Sub(p0))
	if normal.LengthSquared() < 1e-12 {
		// Degenerate triangle, fall back to the closest edge point.
		return closestPointOnLineSegment(p0, p1, point)
	}

	// Project the point onto the triangle plane.
	dist := point.Sub(p0).Dot(normal) / normal.Length()
	projection := point.Sub(normal.Normalize().Mul(dist))

	if pointInTriangle(projection, p0, p1, p2, normal) {
		return projection
	}

	// Outside, take the closest of the three edge points.
	point1 := closestPointOnLineSegment(p0, p1, point)
	point2 := closestPointOnLineSegment(p1, p2, point)
	point3 := closestPointOnLineSegment(p2, p0, point)

	closest := point1
	minDist := point.DistanceSquared(point1)
	if d := point.DistanceSquared(point2); d < minDist {
		closest = point2
		minDist = d
	}
	if d := point.DistanceSquared(point3); d < minDist {
		closest = point3
	}
	return closest
}
