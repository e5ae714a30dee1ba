package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// SphereShape is a small reference convex shape. It exists so the convex
// query paths (CastShape, CollideConvexVsMesh and the dispatch table) can
// be exercised without an external physics engine; real engines plug in
// their own ConvexShape implementations with full GJK/EPA solvers.
type SphereShape struct {
	Radius float32
}

// Type implements Shape.
func (s *SphereShape) Type() ShapeType {
	return ShapeTypeConvex
}

// LocalBounds implements Shape.
func (s *SphereShape) LocalBounds() geometry.AABB {
	return geometry.AABB{
		Min: math32.Vector3{X: -s.Radius, Y: -s.Radius, Z: -s.Radius},
		Max: math32.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius},
	}
}

// scaledRadius applies a uniform scale to the radius; the largest component
// wins for non-uniform scale, which keeps the solver conservative.
func (s *SphereShape) scaledRadius(scale math32.Vector3) float32 {
	a := scale.Abs()
	return s.Radius * math32.Max(math32.Max(a.X, a.Y), a.Z)
}

// sphereTriangleCollider tests a sphere against triangles via the closest
// point on the triangle.
type sphereTriangleCollider struct {
	center      math32.Vector3
	radius      float32
	subShapeID1 SubShapeID
	collector   Collector[CollideShapeResult]
}

// NewTriangleCollider implements ConvexShape.
func (s *SphereShape) NewTriangleCollider(scale1 math32.Vector3, transform1To2 math32.Matrix4, subShapeID1 SubShapeID, settings *CollideSettings, collector Collector[CollideShapeResult]) TriangleCollider {
	return &sphereTriangleCollider{
		center:      transform1To2.Translation(),
		radius:      s.scaledRadius(scale1),
		subShapeID1: subShapeID1,
		collector:   collector,
	}
}

func (c *sphereTriangleCollider) Collide(v0, v1, v2 math32.Vector3, activeEdges uint8, subShapeID2 SubShapeID) {
	closest := geometry.ClosestPointOnTriangle(c.center, v0, v1, v2)
	delta := c.center.Sub(closest)
	distSq := delta.LengthSquared()
	if distSq > c.radius*c.radius {
		return
	}

	dist := math32.Sqrt(distSq)
	axis := delta
	if dist > 0 {
		axis = delta.Mul(1 / dist)
	} else {
		tri := geometry.Triangle{A: v0, B: v1, C: v2}
		axis = tri.GetNormal()
	}

	c.collector.AddHit(CollideShapeResult{
		ContactPointOn1:  c.center.Sub(axis.Mul(c.radius)),
		ContactPointOn2:  closest,
		PenetrationAxis:  axis.Mul(-1),
		PenetrationDepth: c.radius - dist,
		SubShapeID1:      c.subShapeID1,
		SubShapeID2:      subShapeID2,
	})
}

// sphereTriangleCaster sweeps a sphere against triangles by conservative
// advancement: the sphere can close the distance to a triangle at most at
// the sweep speed, so stepping by (distance - radius) never tunnels.
type sphereTriangleCaster struct {
	center      math32.Vector3
	direction   math32.Vector3
	radius      float32
	subShapeID1 SubShapeID
	collector   Collector[ShapeCastResult]
}

// NewTriangleCaster implements ConvexShape.
func (s *SphereShape) NewTriangleCaster(cast *ShapeCast, settings *ShapeCastSettings, scale math32.Vector3, subShapeID1 SubShapeID, collector Collector[ShapeCastResult]) TriangleCaster {
	return &sphereTriangleCaster{
		center:      cast.CenterOfMassStart.Translation(),
		direction:   cast.Direction,
		radius:      s.scaledRadius(scale),
		subShapeID1: subShapeID1,
		collector:   collector,
	}
}

func (c *sphereTriangleCaster) Cast(v0, v1, v2 math32.Vector3, activeEdges uint8, subShapeID2 SubShapeID) {
	const tolerance = 1e-4

	length := c.direction.Length()
	if length == 0 {
		return
	}

	t := float32(0)
	for t <= 1 {
		center := c.center.Add(c.direction.Mul(t))
		closest := geometry.ClosestPointOnTriangle(center, v0, v1, v2)
		dist := center.Distance(closest)
		if dist <= c.radius+tolerance {
			if t < c.collector.EarlyOutFraction() {
				c.collector.AddHit(ShapeCastResult{
					Fraction:        t,
					ContactPointOn2: closest,
					PenetrationAxis: closest.Sub(center),
					SubShapeID1:     c.subShapeID1,
					SubShapeID2:     subShapeID2,
				})
			}
			return
		}
		t += (dist - c.radius) / length
	}
}
