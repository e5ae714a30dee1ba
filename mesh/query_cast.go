package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// castShapeVisitor walks the tree for a swept convex shape. The node test
// scales the child bounds by the mesh scale, enlarges them by the swept
// shape's extent (Minkowski sum) and then casts a ray from the shape's
// bounds center, sorted near to far like the ray cast.
type castShapeVisitor struct {
	collector     Collector[ShapeCastResult]
	caster        TriangleCaster
	scale         math32.Vector3
	invDirection  math32.Vector3
	boxCenter     math32.Vector3
	boxExtent     math32.Vector3
	blockIDBits   uint
	creator2      SubShapeIDCreator
	distanceStack [StackSize]float32
}

func (v *castShapeVisitor) ShouldAbort() bool {
	return v.collector.ShouldEarlyOut()
}

func (v *castShapeVisitor) ShouldVisitNode(stackTop int) bool {
	return v.distanceStack[stackTop] < v.collector.EarlyOutFraction()
}

func (v *castShapeVisitor) VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int {
	// Scale the bounding boxes of this node.
	geometry.AABB4Scale(v.scale, &minX, &minY, &minZ, &maxX, &maxY, &maxZ)

	// Enlarge them by the casted shape's box extents.
	geometry.AABB4EnlargeExtent(v.boxExtent, &minX, &minY, &minZ, &maxX, &maxY, &maxZ)

	// Test the bounds of the four children.
	distance := geometry.RayAABB4(v.boxCenter, v.invDirection, minX, minY, minZ, maxX, maxY, maxZ)

	math32.Sort4Reverse(&distance, properties)
	numResults := math32.CompactBelow(&distance, properties, v.collector.EarlyOutFraction())

	for i := 0; i < numResults; i++ {
		v.distanceStack[stackTop+i] = distance[i]
	}
	return numResults
}

func (v *castShapeVisitor) VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32) {
	blockCreator := v.creator2.PushID(blockID, v.blockIDBits)

	var vertices [MaxTrianglesPerLeaf * 3]math32.Vector3
	ctx.Unpack(block, numTriangles, vertices[:])

	var flags [MaxTrianglesPerLeaf]uint8
	ctx.Flags(block, numTriangles, &flags)

	for triangleIdx := 0; triangleIdx < numTriangles; triangleIdx++ {
		activeEdges := flags[triangleIdx] >> FlagsActiveEdgeShift & FlagsActiveEdgeMask
		subShapeID := blockCreator.PushID(uint32(triangleIdx), NumTriangleBits).ID()

		vertex := vertices[triangleIdx*3:]
		v.caster.Cast(vertex[0], vertex[1], vertex[2], activeEdges, subShapeID)

		if v.collector.ShouldEarlyOut() {
			break
		}
	}
}

// CastShape sweeps a convex shape through the mesh. The cast is expressed
// in the mesh's local (unscaled) space; scale scales the mesh. Hits are
// reported to the collector with sub shape IDs built from both creators.
func (s *MeshShape) CastShape(cast *ShapeCast, settings *ShapeCastSettings, scale math32.Vector3, creator1, creator2 SubShapeIDCreator, collector Collector[ShapeCastResult]) {
	visitor := &castShapeVisitor{
		collector:    collector,
		caster:       cast.Shape.NewTriangleCaster(cast, settings, cast.Scale, creator1.ID(), collector),
		scale:        scale,
		invDirection: geometry.RayInvDirection(cast.Direction),
		boxCenter:    cast.ShapeWorldBounds.Center(),
		boxExtent:    cast.ShapeWorldBounds.Extent(),
		blockIDBits:  triangleBlockIDBits(s.tree),
		creator2:     creator2,
	}
	walkShape(s, visitor)
}
