package geometry

import (
	"github.com/o0olele/trimesh-go/math32"
)

// Triangle is a triangle geometry
type Triangle struct {
	A math32.Vector3 `json:"a"`
	B math32.Vector3 `json:"b"`
	C math32.Vector3 `json:"c"`
}

// GetBounds returns the bounding box of the triangle
func (t *Triangle) GetBounds() AABB {
	return AABB{
		Min: t.A.Min(t.B).Min(t.C),
		Max: t.A.Max(t.B).Max(t.C),
	}
}

// GetNormal returns the CCW normal of the triangle
func (t *Triangle) GetNormal() math32.Vector3 {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	return edge1.Cross(edge2).Normalize()
}

// GetCentroid returns the centroid of the triangle
func (t *Triangle) GetCentroid() math32.Vector3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}
