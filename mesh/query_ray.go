package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// RayCast is a ray in the mesh's local space. The direction is not
// normalized; fractions are relative to its length so fraction 1 is the end
// of the ray.
type RayCast struct {
	Origin    math32.Vector3 `json:"origin"`
	Direction math32.Vector3 `json:"direction"`
}

// BackFaceMode selects how a cast treats triangles facing away from it.
type BackFaceMode uint8

const (
	// IgnoreBackFaces skips triangles whose front side faces away from the
	// cast direction.
	IgnoreBackFaces BackFaceMode = iota
	// CollideWithBackFaces reports hits on both sides.
	CollideWithBackFaces
)

// RayCastSettings configures the collector ray cast.
type RayCastSettings struct {
	BackFaceMode BackFaceMode
}

// rayCastVisitor walks the tree for the nearest hit.
type rayCastVisitor struct {
	hit           *RayCastResult
	rayOrigin     math32.Vector3
	rayDirection  math32.Vector3
	rayInvDir     math32.Vector3
	blockIDBits   uint
	creator       SubShapeIDCreator
	returnValue   bool
	distanceStack [StackSize]float32
}

func (v *rayCastVisitor) ShouldAbort() bool {
	return v.hit.Fraction <= 0
}

func (v *rayCastVisitor) ShouldVisitNode(stackTop int) bool {
	return v.distanceStack[stackTop] < v.hit.Fraction
}

func (v *rayCastVisitor) VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int {
	// Test the bounds of the four children as a unit.
	distance := geometry.RayAABB4(v.rayOrigin, v.rayInvDir, minX, minY, minZ, maxX, maxY, maxZ)

	// Sort furthest first: the walker pops the last pushed lane, so the
	// closest child is processed first.
	math32.Sort4Reverse(&distance, properties)
	numResults := math32.CompactBelow(&distance, properties, v.hit.Fraction)

	for i := 0; i < numResults; i++ {
		v.distanceStack[stackTop+i] = distance[i]
	}
	return numResults
}

func (v *rayCastVisitor) VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32) {
	fraction, triangleIdx := ctx.TestRay(v.rayOrigin, v.rayDirection, block, numTriangles, v.hit.Fraction)
	if fraction < v.hit.Fraction {
		v.hit.Fraction = fraction
		v.hit.SubShapeID2 = v.creator.PushID(blockID, v.blockIDBits).PushID(triangleIdx, NumTriangleBits).ID()
		v.returnValue = true
	}
}

// CastRay finds the closest hit of a ray against the mesh. hit.Fraction is
// the incoming upper bound and is updated on success. Returns true when a
// closer hit was found.
func (s *MeshShape) CastRay(ray RayCast, creator SubShapeIDCreator, hit *RayCastResult) bool {
	visitor := &rayCastVisitor{
		hit:          hit,
		rayOrigin:    ray.Origin,
		rayDirection: ray.Direction,
		rayInvDir:    geometry.RayInvDirection(ray.Direction),
		blockIDBits:  triangleBlockIDBits(s.tree),
		creator:      creator,
	}
	walkShape(s, visitor)
	return visitor.returnValue
}

// rayCastAllVisitor walks the tree reporting every hit to a collector.
type rayCastAllVisitor struct {
	collector     Collector[RayCastResult]
	rayOrigin     math32.Vector3
	rayDirection  math32.Vector3
	rayInvDir     math32.Vector3
	backFaceMode  BackFaceMode
	blockIDBits   uint
	creator       SubShapeIDCreator
	distanceStack [StackSize]float32
}

func (v *rayCastAllVisitor) ShouldAbort() bool {
	return v.collector.ShouldEarlyOut()
}

func (v *rayCastAllVisitor) ShouldVisitNode(stackTop int) bool {
	return v.distanceStack[stackTop] < v.collector.EarlyOutFraction()
}

func (v *rayCastAllVisitor) VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int {
	distance := geometry.RayAABB4(v.rayOrigin, v.rayInvDir, minX, minY, minZ, maxX, maxY, maxZ)
	math32.Sort4Reverse(&distance, properties)
	numResults := math32.CompactBelow(&distance, properties, v.collector.EarlyOutFraction())

	for i := 0; i < numResults; i++ {
		v.distanceStack[stackTop+i] = distance[i]
	}
	return numResults
}

func (v *rayCastAllVisitor) VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32) {
	blockCreator := v.creator.PushID(blockID, v.blockIDBits)

	var vertices [MaxTrianglesPerLeaf * 3]math32.Vector3
	ctx.Unpack(block, numTriangles, vertices[:])

	for triangleIdx := 0; triangleIdx < numTriangles; triangleIdx++ {
		v0 := vertices[triangleIdx*3]
		v1 := vertices[triangleIdx*3+1]
		v2 := vertices[triangleIdx*3+2]

		// Back facing check
		if v.backFaceMode == IgnoreBackFaces && v2.Sub(v0).Cross(v1.Sub(v0)).Dot(v.rayDirection) < 0 {
			continue
		}

		fraction := geometry.RayTriangle(v.rayOrigin, v.rayDirection, v0, v1, v2)
		if fraction < v.collector.EarlyOutFraction() {
			v.collector.AddHit(RayCastResult{
				Fraction:    fraction,
				SubShapeID2: blockCreator.PushID(uint32(triangleIdx), NumTriangleBits).ID(),
			})
		}
	}
}

// CastRayAll reports every hit of a ray against the mesh to the collector,
// honoring the back face mode. Traversal stops when the collector asks for
// an early out.
func (s *MeshShape) CastRayAll(ray RayCast, settings RayCastSettings, creator SubShapeIDCreator, collector Collector[RayCastResult]) {
	visitor := &rayCastAllVisitor{
		collector:    collector,
		rayOrigin:    ray.Origin,
		rayDirection: ray.Direction,
		rayInvDir:    geometry.RayInvDirection(ray.Direction),
		backFaceMode: settings.BackFaceMode,
		blockIDBits:  triangleBlockIDBits(s.tree),
		creator:      creator,
	}
	walkShape(s, visitor)
}
