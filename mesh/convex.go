package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// The convex vs triangle primitive solvers are external collaborators: a
// convex shape brings its own. The mesh queries decode triangles, extract
// the active edge bits and feed them to the solver one triangle at a time.

// TriangleCollider tests one convex shape against triangles for overlap.
// activeEdges holds the three active edge bits in its low bits; contacts on
// inactive edges should be attributed to the triangle face instead.
type TriangleCollider interface {
	Collide(v0, v1, v2 math32.Vector3, activeEdges uint8, subShapeID2 SubShapeID)
}

// TriangleCaster sweeps one convex shape against triangles.
type TriangleCaster interface {
	Cast(v0, v1, v2 math32.Vector3, activeEdges uint8, subShapeID2 SubShapeID)
}

// CollideSettings configures overlap queries.
type CollideSettings struct {
	BackFaceMode          BackFaceMode
	MaxSeparationDistance float32
}

// ShapeCastSettings configures swept shape queries.
type ShapeCastSettings struct {
	BackFaceModeTriangles BackFaceMode
}

// ConvexShape is a convex shape that can collide with the mesh. The factory
// methods return the external per-triangle solvers, bound to the query
// arguments and the collector.
type ConvexShape interface {
	Shape

	// NewTriangleCollider returns the solver for an overlap query. The
	// transforms map the convex shape's space and the mesh's space to the
	// common query space.
	NewTriangleCollider(scale1 math32.Vector3, transform1To2 math32.Matrix4, subShapeID1 SubShapeID, settings *CollideSettings, collector Collector[CollideShapeResult]) TriangleCollider

	// NewTriangleCaster returns the solver for a swept query, expressed in
	// the mesh's local space.
	NewTriangleCaster(cast *ShapeCast, settings *ShapeCastSettings, scale math32.Vector3, subShapeID1 SubShapeID, collector Collector[ShapeCastResult]) TriangleCaster
}

// ShapeCast describes a convex shape swept through the mesh's local space.
type ShapeCast struct {
	// Shape is the swept convex shape.
	Shape ConvexShape

	// Scale scales the swept shape in its local space.
	Scale math32.Vector3

	// CenterOfMassStart positions the shape at the start of the sweep, in
	// the mesh's local space.
	CenterOfMassStart math32.Matrix4

	// Direction is the sweep; fraction 1 is its end.
	Direction math32.Vector3

	// ShapeWorldBounds is the bounds of the shape at the sweep start in the
	// mesh's local space.
	ShapeWorldBounds geometry.AABB
}

// NewShapeCast builds a shape cast and derives the start bounds from the
// shape.
func NewShapeCast(shape ConvexShape, scale math32.Vector3, centerOfMassStart math32.Matrix4, direction math32.Vector3) *ShapeCast {
	local := shape.LocalBounds()
	scaled := local.Scaled(scale)
	return &ShapeCast{
		Shape:             shape,
		Scale:             scale,
		CenterOfMassStart: centerOfMassStart,
		Direction:         direction,
		ShapeWorldBounds:  scaled.Transformed(centerOfMassStart),
	}
}
