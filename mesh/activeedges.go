package mesh

import (
	"fmt"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// meshEdge is an unordered vertex pair.
type meshEdge struct {
	idx1, idx2 uint32
}

func makeMeshEdge(a, b uint32) meshEdge {
	if a > b {
		a, b = b, a
	}
	return meshEdge{idx1: a, idx2: b}
}

// indexInTriangle returns which of the triangle's three edges this edge is
// (0: i0-i1, 1: i1-i2, 2: i2-i0), or -1 if the triangle does not contain it.
func (e meshEdge) indexInTriangle(tri *IndexedTriangle) int {
	for edgeIdx := 0; edgeIdx < 3; edgeIdx++ {
		if makeMeshEdge(tri.Idx[edgeIdx], tri.Idx[(edgeIdx+1)%3]) == e {
			return edgeIdx
		}
	}
	return -1
}

// findActiveEdges determines which edges of the mesh are collidable and
// sets the matching active edge bits in every incident triangle's flags.
// Boundary and non-manifold edges are always active; an edge shared by
// exactly two triangles is active when the dihedral between them is sharp
// and convex.
func findActiveEdges(vertices []math32.Vector3, triangles []IndexedTriangle) {
	// Map each unordered edge to the triangles containing it.
	edgeToTriangle := make(map[meshEdge][]uint32, len(triangles)*3)
	for triangleIdx := range triangles {
		tri := &triangles[triangleIdx]
		for edgeIdx := 0; edgeIdx < 3; edgeIdx++ {
			edge := makeMeshEdge(tri.Idx[edgeIdx], tri.Idx[(edgeIdx+1)%3])
			edgeToTriangle[edge] = append(edgeToTriangle[edge], uint32(triangleIdx))
		}
	}

	for edge, incident := range edgeToTriangle {
		var active bool
		switch len(incident) {
		case 1:
			// The edge is not shared, it is an active edge.
			active = true
		case 2:
			// Shared by two triangles, decide by the dihedral between them.
			tri1 := &triangles[incident[0]]
			tri2 := &triangles[incident[1]]
			edgeIdx1 := edge.indexInTriangle(tri1)
			edgeIdx2 := edge.indexInTriangle(tri2)

			e1 := vertices[tri1.Idx[edgeIdx1]]
			e2 := vertices[tri1.Idx[(edgeIdx1+1)%3]]
			op1 := vertices[tri1.Idx[(edgeIdx1+2)%3]]
			plane1 := geometry.PlaneFromPointsCCW(e1, e2, op1)

			f1 := vertices[tri2.Idx[edgeIdx2]]
			f2 := vertices[tri2.Idx[(edgeIdx2+1)%3]]
			op2 := vertices[tri2.Idx[(edgeIdx2+2)%3]]
			plane2 := geometry.PlaneFromPointsCCW(f1, f2, op2)

			active = geometry.IsEdgeActive(plane1.Normal, plane2.Normal, e1.Sub(e2))
		default:
			// More than two incoming triangles, assume active.
			active = true
		}

		if !active {
			continue
		}
		for _, triangleIdx := range incident {
			tri := &triangles[triangleIdx]
			edgeIdx := edge.indexInTriangle(tri)
			mask := uint32(1) << (uint(edgeIdx) + FlagsActiveEdgeShift)
			if tri.MaterialIndex&mask != 0 {
				panic(fmt.Sprintf("mesh: active edge bit %d already set on triangle %d", edgeIdx, triangleIdx))
			}
			tri.MaterialIndex |= mask
		}
	}
}
