package mesh

import (
	"fmt"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// ShapeType discriminates shapes in the collision dispatch table.
type ShapeType uint8

const (
	// ShapeTypeConvex marks convex shapes (spheres, boxes, hulls, ...).
	ShapeTypeConvex ShapeType = iota
	// ShapeTypeMesh marks the static triangle mesh shape.
	ShapeTypeMesh
)

// Shape is the minimal surface the dispatch table and the queries need.
type Shape interface {
	Type() ShapeType
	LocalBounds() geometry.AABB
}

// MassProperties describes the mass of a shape.
type MassProperties struct {
	Mass    float32
	Inertia math32.Matrix4
}

// Settings describes a mesh shape to build: either a triangle soup (via
// NewSettingsFromTriangles) or a vertex list with indexed triangles, plus
// an optional ordered material table referenced by the triangles' material
// indices.
type Settings struct {
	TriangleVertices []math32.Vector3
	IndexedTriangles []IndexedTriangle
	Materials        []Material

	// Splitter partitions triangles during the tree build; nil selects a
	// binning surface area heuristic splitter.
	Splitter Splitter

	cachedShape *MeshShape
	cachedErr   error
	cached      bool
}

// NewSettingsFromTriangles indexifies a triangle soup into settings.
func NewSettingsFromTriangles(triangles []geometry.Triangle, materials []Material) *Settings {
	vertices, indexed := Indexify(triangles)
	s := &Settings{
		TriangleVertices: vertices,
		IndexedTriangles: indexed,
		Materials:        materials,
	}
	s.Sanitize()
	return s
}

// NewSettings creates settings from a vertex list and indexed triangles.
func NewSettings(vertices []math32.Vector3, triangles []IndexedTriangle, materials []Material) *Settings {
	s := &Settings{
		TriangleVertices: vertices,
		IndexedTriangles: triangles,
		Materials:        materials,
	}
	s.Sanitize()
	return s
}

// Sanitize removes degenerate and duplicate triangles from the settings.
func (s *Settings) Sanitize() {
	s.IndexedTriangles = Sanitize(s.IndexedTriangles)
}

// Create builds the shape. The result, success or failure, is cached; a
// second call returns the same shape.
func (s *Settings) Create() (*MeshShape, error) {
	if !s.cached {
		s.cachedShape, s.cachedErr = newMeshShape(s)
		s.cached = true
	}
	return s.cachedShape, s.cachedErr
}

// MeshShape is an immutable static triangle mesh. The only large state is
// the encoded tree buffer; any number of goroutines may query the shape
// concurrently once it is built.
type MeshShape struct {
	tree      []byte
	materials []Material
}

func newMeshShape(settings *Settings) (*MeshShape, error) {
	if len(settings.IndexedTriangles) == 0 {
		return nil, ErrEmptyTriangles
	}

	for t := range settings.IndexedTriangles {
		tri := &settings.IndexedTriangles[t]
		if tri.IsDegenerate() {
			return nil, fmt.Errorf("%w: triangle %d", ErrDegenerateTriangle, t)
		}
		for slot := 0; slot < 3; slot++ {
			if tri.Idx[slot] >= uint32(len(settings.TriangleVertices)) {
				return nil, fmt.Errorf("%w: triangle %d slot %d references vertex %d (vertex count %d)",
					ErrIndexOutOfRange, t, slot, tri.Idx[slot], len(settings.TriangleVertices))
			}
		}
	}

	if len(settings.Materials) > 0 {
		if len(settings.Materials) > FlagsMaterialMask+1 {
			return nil, fmt.Errorf("%w: %d materials, supporting max %d materials per mesh",
				ErrTooManyMaterials, len(settings.Materials), FlagsMaterialMask+1)
		}
		for t := range settings.IndexedTriangles {
			if idx := settings.IndexedTriangles[t].MaterialIndex & FlagsMaterialMask; idx >= uint32(len(settings.Materials)) {
				return nil, fmt.Errorf("%w: triangle %d uses material %d (material count %d)",
					ErrMaterialOutOfRange, t, idx, len(settings.Materials))
			}
		}
	} else {
		for t := range settings.IndexedTriangles {
			if settings.IndexedTriangles[t].MaterialIndex&FlagsMaterialMask != 0 {
				return nil, fmt.Errorf("%w: triangle %d", ErrMissingMaterial, t)
			}
		}
	}

	// Copy the triangles, the active edge bits are folded into the flags.
	triangles := make([]IndexedTriangle, len(settings.IndexedTriangles))
	copy(triangles, settings.IndexedTriangles)
	findActiveEdges(settings.TriangleVertices, triangles)

	splitter := settings.Splitter
	if splitter == nil {
		splitter = NewBinningSplitter(settings.TriangleVertices, triangles, 32)
	}

	var stats BuildStats
	stats.Triangles = len(triangles)
	root := buildAABBTree(settings.TriangleVertices, triangles, splitter, &stats)

	tree, err := encodeTree(settings.TriangleVertices, triangles, root, &stats)
	if err != nil {
		return nil, err
	}

	shape := &MeshShape{tree: tree, materials: settings.Materials}
	if shape.SubShapeIDBits() > SubShapeIDMaxBits {
		return nil, ErrMeshTooLarge
	}
	return shape, nil
}

// Type implements Shape.
func (s *MeshShape) Type() ShapeType {
	return ShapeTypeMesh
}

// LocalBounds returns the bounds of the whole mesh in local space.
func (s *MeshShape) LocalBounds() geometry.AABB {
	header := decodeNodeHeader(s.tree)
	return geometry.AABB{Min: header.RootBoundsMin, Max: header.RootBoundsMax}
}

// GetMassProperties returns default mass properties; the shape is always
// static.
func (s *MeshShape) GetMassProperties() MassProperties {
	return MassProperties{Inertia: math32.Matrix4Identity()}
}

// SubShapeIDBits returns how many sub shape ID bits a triangle of this
// shape consumes.
func (s *MeshShape) SubShapeIDBits() uint {
	return triangleBlockIDBits(s.tree) + NumTriangleBits
}

// decodeSubShapeID resolves a sub shape ID into the triangle's leaf block
// and its index within the block. An ID with leftover bits is a programmer
// error.
func (s *MeshShape) decodeSubShapeID(id SubShapeID) (block []byte, triangleIdx uint32) {
	blockID, remainder := id.PopID(triangleBlockIDBits(s.tree))
	triangleIdx, remainder = remainder.PopID(NumTriangleBits)
	if !remainder.IsEmpty() {
		panic("mesh: invalid sub shape ID")
	}
	start := triangleBlockStart(s.tree, blockID)
	return s.tree[start : start+triangleBlockSize], triangleIdx
}

// GetMaterial returns the material of the triangle behind a sub shape ID,
// or the default material when the mesh has no material table.
func (s *MeshShape) GetMaterial(id SubShapeID) Material {
	if len(s.materials) == 0 {
		return DefaultMaterial
	}
	block, triangleIdx := s.decodeSubShapeID(id)
	flags := TriangleFlags(block, int(triangleIdx))
	return s.materials[flags&FlagsMaterialMask]
}

// GetSurfaceNormal returns the CCW face normal of the triangle behind a
// sub shape ID. The local surface position is not needed for a flat
// triangle but kept for interface parity with curved shapes.
func (s *MeshShape) GetSurfaceNormal(id SubShapeID, localSurfacePosition math32.Vector3) math32.Vector3 {
	_ = localSurfacePosition
	block, triangleIdx := s.decodeSubShapeID(id)
	ctx := newTriangleContext(s.tree)
	v0, v1, v2 := ctx.Triangle(block, int(triangleIdx))
	return v2.Sub(v1).Cross(v0.Sub(v1)).Normalize()
}

// walkShape starts a fresh traversal of the encoded tree with the visitor.
func walkShape[V Visitor](s *MeshShape, visitor V) {
	header := decodeNodeHeader(s.tree)
	w := newWalkContext(header.RootProperties)
	ctx := newTriangleContext(s.tree)
	walk(&w, s.tree, &ctx, visitor)
}
