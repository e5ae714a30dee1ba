package geometry

import "github.com/o0olele/trimesh-go/math32"

// AABB is axis-aligned bounding box
type AABB struct {
	Min math32.Vector3 `json:"min"`
	Max math32.Vector3 `json:"max"`
}

// EmptyAABB returns an inverted box that contains nothing; merging any box
// or point into it yields that box or point.
func EmptyAABB() AABB {
	return AABB{
		Min: math32.Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math32.Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// Contains checks if the point is inside the AABB
func (aabb *AABB) Contains(point math32.Vector3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the center of the AABB
func (aabb *AABB) Center() math32.Vector3 {
	return math32.Vector3{
		X: (aabb.Min.X + aabb.Max.X) / 2,
		Y: (aabb.Min.Y + aabb.Max.Y) / 2,
		Z: (aabb.Min.Z + aabb.Max.Z) / 2,
	}
}

// Size returns the size of the AABB
func (aabb *AABB) Size() math32.Vector3 {
	return aabb.Max.Sub(aabb.Min)
}

// Extent returns the half size of the AABB
func (aabb *AABB) Extent() math32.Vector3 {
	return aabb.Size().Scale(0.5)
}

// Intersects checks if the AABB intersects with another AABB
func (aabb *AABB) Intersects(other AABB) bool {
	return aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// IsEmpty checks if the AABB is empty (invalid)
func (aabb *AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Merge returns the union of two AABBs
func (aabb *AABB) Merge(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Extend returns the AABB grown to include the point
func (aabb *AABB) Extend(point math32.Vector3) AABB {
	return AABB{
		Min: aabb.Min.Min(point),
		Max: aabb.Max.Max(point),
	}
}

// Scaled returns the AABB scaled component-wise; negative scale components
// are handled by re-sorting the bounds.
func (aabb *AABB) Scaled(scale math32.Vector3) AABB {
	a := aabb.Min.MulComponents(scale)
	b := aabb.Max.MulComponents(scale)
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// Transformed returns the smallest AABB containing the corners of the AABB
// transformed by m.
func (aabb *AABB) Transformed(m math32.Matrix4) AABB {
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		corner := math32.Vector3{X: aabb.Min.X, Y: aabb.Min.Y, Z: aabb.Min.Z}
		if i&1 != 0 {
			corner.X = aabb.Max.X
		}
		if i&2 != 0 {
			corner.Y = aabb.Max.Y
		}
		if i&4 != 0 {
			corner.Z = aabb.Max.Z
		}
		out = out.Extend(m.MulPoint(corner))
	}
	return out
}
