package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// Stats describes the memory use and content of a shape.
type Stats struct {
	SizeBytes    int `json:"size_bytes"`
	NumTriangles int `json:"num_triangles"`
}

// statsVisitor counts the triangles stored in the tree.
type statsVisitor struct {
	numTriangles int
}

func (v *statsVisitor) ShouldAbort() bool { return false }

func (v *statsVisitor) ShouldVisitNode(stackTop int) bool { return true }

func (v *statsVisitor) VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int {
	// Visit all valid children.
	valid := geometry.AABB4Valid(minX, minY, minZ, maxX, maxY, maxZ)
	return math32.CompactTrue(valid, properties)
}

func (v *statsVisitor) VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32) {
	v.numTriangles += numTriangles
}

// GetStats walks the tree and reports the shape's size and triangle count.
func (s *MeshShape) GetStats() Stats {
	var visitor statsVisitor
	walkShape(s, &visitor)
	return Stats{
		SizeBytes:    len(s.tree) + len(s.materials)*16,
		NumTriangles: visitor.numTriangles,
	}
}
