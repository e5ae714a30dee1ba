package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// Per-triangle flags byte layout. The low bits carry the material index,
// the three bits above it mark which of the triangle's edges are active.
const (
	// FlagsMaterialMask selects the material index; at most
	// FlagsMaterialMask+1 materials per mesh.
	FlagsMaterialMask = 0b11111

	// FlagsActiveEdgeMask selects the three active edge bits after shifting
	// down by FlagsActiveEdgeShift. Bit n belongs to the edge from vertex n
	// to vertex (n+1)%3.
	FlagsActiveEdgeMask = 0b111

	// FlagsActiveEdgeShift is the bit offset of the active edge bits.
	FlagsActiveEdgeShift = 5
)

// IndexedTriangle references three vertices of a vertex list. The
// MaterialIndex word doubles as the triangle's flags: the shape build folds
// the active edge bits into it above the material bits.
type IndexedTriangle struct {
	Idx           [3]uint32 `json:"idx"`
	MaterialIndex uint32    `json:"material_index"`
}

// IsDegenerate checks if two or more vertex indices are equal.
func (t *IndexedTriangle) IsDegenerate() bool {
	return t.Idx[0] == t.Idx[1] || t.Idx[1] == t.Idx[2] || t.Idx[2] == t.Idx[0]
}

// LowestIndexFirst returns the triangle rotated so the smallest vertex
// index comes first. The winding is preserved.
func (t *IndexedTriangle) LowestIndexFirst() IndexedTriangle {
	out := *t
	if t.Idx[1] < t.Idx[0] && t.Idx[1] <= t.Idx[2] {
		out.Idx = [3]uint32{t.Idx[1], t.Idx[2], t.Idx[0]}
	} else if t.Idx[2] < t.Idx[0] && t.Idx[2] < t.Idx[1] {
		out.Idx = [3]uint32{t.Idx[2], t.Idx[0], t.Idx[1]}
	}
	return out
}

// GetBounds returns the bounding box of the triangle in the given vertex list.
func (t *IndexedTriangle) GetBounds(vertices []math32.Vector3) geometry.AABB {
	tri := geometry.Triangle{A: vertices[t.Idx[0]], B: vertices[t.Idx[1]], C: vertices[t.Idx[2]]}
	return tri.GetBounds()
}

// GetCentroid returns the centroid of the triangle in the given vertex list.
func (t *IndexedTriangle) GetCentroid(vertices []math32.Vector3) math32.Vector3 {
	return vertices[t.Idx[0]].Add(vertices[t.Idx[1]]).Add(vertices[t.Idx[2]]).Mul(1.0 / 3.0)
}

// Indexify welds the vertices of a triangle soup and produces a vertex list
// plus indexed triangles. Identical positions share one vertex.
func Indexify(triangles []geometry.Triangle) ([]math32.Vector3, []IndexedTriangle) {
	vertices := make([]math32.Vector3, 0, len(triangles))
	indexed := make([]IndexedTriangle, 0, len(triangles))
	lookup := make(map[math32.Vector3]uint32, len(triangles))

	add := func(v math32.Vector3) uint32 {
		if idx, ok := lookup[v]; ok {
			return idx
		}
		idx := uint32(len(vertices))
		vertices = append(vertices, v)
		lookup[v] = idx
		return idx
	}

	for i := range triangles {
		tri := &triangles[i]
		indexed = append(indexed, IndexedTriangle{
			Idx: [3]uint32{add(tri.A), add(tri.B), add(tri.C)},
		})
	}
	return vertices, indexed
}
