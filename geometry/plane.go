package geometry

import "github.com/o0olele/trimesh-go/math32"

// Plane is an infinite plane in normal + constant form: dot(normal, p) + d = 0.
type Plane struct {
	Normal math32.Vector3
	D      float32
}

// PlaneFromPointsCCW constructs a plane through three points; the normal
// follows the counter-clockwise winding of (a, b, c).
func PlaneFromPointsCCW(a, b, c math32.Vector3) Plane {
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: normal, D: -normal.Dot(a)}
}

// SignedDistance returns the signed distance of a point to the plane.
func (p *Plane) SignedDistance(point math32.Vector3) float32 {
	return p.Normal.Dot(point) + p.D
}
