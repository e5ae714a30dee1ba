package mesh

import (
	"fmt"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// collideConvexVisitor walks the tree for a convex overlap query. The node
// test scales the child bounds by the mesh scale and checks them against
// the convex shape's bounds as an oriented box in the mesh's local frame;
// colliding children go first, no distance ordering.
type collideConvexVisitor struct {
	collector    Collector[CollideShapeResult]
	collider     TriangleCollider
	scale2       math32.Vector3
	boundsOf1In2 geometry.OrientedBox
	blockIDBits  uint
	creator2     SubShapeIDCreator
}

func (v *collideConvexVisitor) ShouldAbort() bool {
	return v.collector.ShouldEarlyOut()
}

func (v *collideConvexVisitor) ShouldVisitNode(stackTop int) bool {
	return true
}

func (v *collideConvexVisitor) VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int {
	// Scale the bounding boxes of this node.
	geometry.AABB4Scale(v.scale2, &minX, &minY, &minZ, &maxX, &maxY, &maxZ)

	// Test which nodes collide.
	collides := geometry.AABB4OverlapsOrientedBox(&v.boundsOf1In2, minX, minY, minZ, maxX, maxY, maxZ)

	return math32.CompactTrue(collides, properties)
}

func (v *collideConvexVisitor) VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32) {
	blockCreator := v.creator2.PushID(blockID, v.blockIDBits)

	var vertices [MaxTrianglesPerLeaf * 3]math32.Vector3
	ctx.Unpack(block, numTriangles, vertices[:])

	var flags [MaxTrianglesPerLeaf]uint8
	ctx.Flags(block, numTriangles, &flags)

	for triangleIdx := 0; triangleIdx < numTriangles; triangleIdx++ {
		subShapeID := blockCreator.PushID(uint32(triangleIdx), NumTriangleBits).ID()
		activeEdges := flags[triangleIdx] >> FlagsActiveEdgeShift & FlagsActiveEdgeMask

		vertex := vertices[triangleIdx*3:]
		v.collider.Collide(vertex[0], vertex[1], vertex[2], activeEdges, subShapeID)

		if v.collector.ShouldEarlyOut() {
			break
		}
	}
}

// CollideConvexVsMesh collides a convex shape (shape 1) against a mesh
// shape (shape 2). It is registered in the collision dispatch table for
// (convex, mesh) pairs; the transforms map each shape's local space to the
// common query space.
func CollideConvexVsMesh(shape1, shape2 Shape, scale1, scale2 math32.Vector3, comTransform1, comTransform2 math32.Matrix4, creator1, creator2 SubShapeIDCreator, settings *CollideSettings, collector Collector[CollideShapeResult]) {
	convex, ok := shape1.(ConvexShape)
	if !ok {
		panic(fmt.Sprintf("mesh: CollideConvexVsMesh needs a convex shape 1, got type %d", shape1.Type()))
	}
	meshShape, ok := shape2.(*MeshShape)
	if !ok {
		panic(fmt.Sprintf("mesh: CollideConvexVsMesh needs a mesh shape 2, got type %d", shape2.Type()))
	}

	// The convex shape's bounds as an oriented box in the mesh's local
	// (unscaled) frame.
	transform1To2 := comTransform2.InverseRigid().Mul(comTransform1)
	bounds1 := shape1.LocalBounds()
	scaledBounds1 := bounds1.Scaled(scale1)

	visitor := &collideConvexVisitor{
		collector:    collector,
		collider:     convex.NewTriangleCollider(scale1, transform1To2, creator1.ID(), settings, collector),
		scale2:       scale2,
		boundsOf1In2: geometry.NewOrientedBox(transform1To2, scaledBounds1),
		blockIDBits:  triangleBlockIDBits(meshShape.tree),
		creator2:     creator2,
	}
	walkShape(meshShape, visitor)
}
