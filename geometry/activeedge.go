package geometry

import "github.com/o0olele/trimesh-go/math32"

const (
	// cos(179 deg); normals almost opposite means the mesh is a thin sheet
	// and the edge must stay collidable.
	activeEdgeCosThresholdAngle = -0.999848

	// sin(-5 deg); a convex bend beyond this angle makes the edge active.
	activeEdgeSinThresholdAngle = -0.087156
)

// IsEdgeActive determines if the edge between two triangles is collidable.
// normal1 and normal2 are the CCW face normals, edgeDir runs along the
// shared edge against the winding order of triangle 1. Coplanar and concave
// edges are inactive, so contacts on them can be attributed to the
// adjacent face.
func IsEdgeActive(normal1, normal2, edgeDir math32.Vector3) bool {
	if normal1.Dot(normal2) < activeEdgeCosThresholdAngle {
		return true
	}
	// Points into triangle 1 in its plane; a convex neighbor has its
	// normal on the far side of that direction.
	perpendicular := edgeDir.Cross(normal1)
	bend := perpendicular.Dot(normal2)
	if bend < 0 && normal1.Dot(normal2) < 0 {
		// Convex bend past 90 degrees, where the sine shrinks again.
		return true
	}
	return bend < activeEdgeSinThresholdAngle*edgeDir.Length()*normal2.Length()
}
