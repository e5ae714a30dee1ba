package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// MinTrianglesRequested is the smallest buffer GetTrianglesNext accepts;
// a whole leaf block must always fit.
const MinTrianglesRequested = MaxTrianglesPerLeaf

// GetTrianglesContext is the resumable state of a region enumeration. It
// is initialized by GetTrianglesStart and consumed by GetTrianglesNext.
type GetTrianglesContext struct {
	walk         walkContext
	localBox     geometry.OrientedBox
	meshScale    math32.Vector3
	localToWorld math32.Matrix4
	isInsideOut  bool
	maxRequested int
	outVertices  []geometry.Triangle
	outMaterials []Material
	materials    []Material
	numFound     int
	shouldAbort  bool
}

func (c *GetTrianglesContext) ShouldAbort() bool {
	return c.shouldAbort
}

func (c *GetTrianglesContext) ShouldVisitNode(stackTop int) bool {
	return true
}

func (c *GetTrianglesContext) VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int {
	// Scale the bounding boxes of this node.
	geometry.AABB4Scale(c.meshScale, &minX, &minY, &minZ, &maxX, &maxY, &maxZ)

	// Test which nodes overlap the query box, colliding children first.
	collides := geometry.AABB4OverlapsOrientedBox(&c.localBox, minX, minY, minZ, maxX, maxY, maxZ)

	return math32.CompactTrue(collides, properties)
}

func (c *GetTrianglesContext) VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32) {
	// When the leaf does not fit the output buffer, abort the walk without
	// consuming it; the next GetTrianglesNext call resumes here.
	if c.numFound+numTriangles > c.maxRequested {
		c.shouldAbort = true
		return
	}

	var vertices [MaxTrianglesPerLeaf * 3]math32.Vector3
	ctx.Unpack(block, numTriangles, vertices[:])

	for i := 0; i < numTriangles; i++ {
		v0 := c.localToWorld.MulPoint(vertices[i*3])
		v1 := c.localToWorld.MulPoint(vertices[i*3+1])
		v2 := c.localToWorld.MulPoint(vertices[i*3+2])
		if c.isInsideOut {
			// Scaled inside out, flip the winding.
			v1, v2 = v2, v1
		}
		c.outVertices[c.numFound+i] = geometry.Triangle{A: v0, B: v1, C: v2}
	}

	if c.outMaterials != nil {
		if len(c.materials) == 0 {
			for i := 0; i < numTriangles; i++ {
				c.outMaterials[c.numFound+i] = DefaultMaterial
			}
		} else {
			var flags [MaxTrianglesPerLeaf]uint8
			ctx.Flags(block, numTriangles, &flags)
			for i := 0; i < numTriangles; i++ {
				c.outMaterials[c.numFound+i] = c.materials[flags[i]&FlagsMaterialMask]
			}
		}
	}

	c.numFound += numTriangles
}

// isInsideOut checks if a scale mirrors space (an odd number of negative
// components).
func isInsideOut(scale math32.Vector3) bool {
	negative := 0
	if scale.X < 0 {
		negative++
	}
	if scale.Y < 0 {
		negative++
	}
	if scale.Z < 0 {
		negative++
	}
	return negative&1 == 1
}

// GetTrianglesStart begins enumerating the triangles inside a region. The
// box is given in world space; position, rotation and scale place the mesh
// in the world.
func (s *MeshShape) GetTrianglesStart(ctx *GetTrianglesContext, box geometry.AABB, position math32.Vector3, rotation math32.Quaternion, scale math32.Vector3) {
	header := decodeNodeHeader(s.tree)
	localToWorld := math32.Matrix4RotationTranslation(rotation, position).Mul(math32.Matrix4Scale(scale))

	*ctx = GetTrianglesContext{
		walk:         newWalkContext(header.RootProperties),
		localBox:     geometry.NewOrientedBox(math32.Matrix4InverseRotationTranslation(rotation, position), box),
		meshScale:    scale,
		localToWorld: localToWorld,
		isInsideOut:  isInsideOut(scale),
		materials:    s.materials,
	}
}

// GetTrianglesNext resumes the enumeration and fills outVertices (and
// outMaterials when non-nil) with up to maxTriangles triangles. It returns
// how many were produced; 0 means the region is exhausted. maxTriangles
// must be at least MinTrianglesRequested, and the output slices must hold
// at least maxTriangles entries.
func (s *MeshShape) GetTrianglesNext(ctx *GetTrianglesContext, maxTriangles int, outVertices []geometry.Triangle, outMaterials []Material) int {
	if maxTriangles < MinTrianglesRequested {
		panic("mesh: maxTriangles must be at least MinTrianglesRequested")
	}
	if ctx.walk.isDone() {
		return 0
	}

	ctx.maxRequested = maxTriangles
	ctx.outVertices = outVertices
	ctx.outMaterials = outMaterials
	ctx.shouldAbort = false
	ctx.numFound = 0

	triCtx := newTriangleContext(s.tree)
	walk(&ctx.walk, s.tree, &triCtx, ctx)
	return ctx.numFound
}
