package mesh

import (
	"encoding/binary"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// Triangle codec: vertices are quantized to 16 bits per component against
// the root bounds and stored once in a vertex table; a leaf block packs up
// to MaxTrianglesPerLeaf triangles as 8 bit vertex indices relative to the
// block's base vertex (SoA), one flags byte per triangle.
//
// Leaf block layout (triangleBlockSize bytes):
//
//	BaseVertex uint32 | I0[4] uint8 | I1[4] uint8 | I2[4] uint8 | Flags[4] uint8
const (
	triangleBlockSize = 20
	vertexSize        = 6

	blockBaseOffset  = 0
	blockIdxOffset   = 4
	blockFlagsOffset = 16
)

// triangleHeader carries the vertex decompression parameters.
type triangleHeader struct {
	Offset      math32.Vector3
	Scale       math32.Vector3
	NumVertices uint32
}

func (h *triangleHeader) encode(buf []byte) {
	putVector3(buf[0:], h.Offset)
	putVector3(buf[12:], h.Scale)
	binary.LittleEndian.PutUint32(buf[24:], h.NumVertices)
}

func decodeTriangleHeader(tree []byte) triangleHeader {
	buf := tree[nodeHeaderSize:]
	return triangleHeader{
		Offset:      getVector3(buf[0:]),
		Scale:       getVector3(buf[12:]),
		NumVertices: binary.LittleEndian.Uint32(buf[24:]),
	}
}

// newTriangleHeader derives the quantization parameters from the root
// bounds: 16 bits per component across the mesh extent.
func newTriangleHeader(bounds geometry.AABB) triangleHeader {
	size := bounds.Size()
	return triangleHeader{
		Offset: bounds.Min,
		Scale:  math32.Vector3{X: size.X / 65535, Y: size.Y / 65535, Z: size.Z / 65535},
	}
}

// quantizeComponent compresses one vertex component.
func quantizeComponent(v, offset, scale float32) uint16 {
	if scale <= 0 {
		return 0
	}
	q := math32.RoundToInt((v - offset) / scale)
	if q < 0 {
		q = 0
	} else if q > 65535 {
		q = 65535
	}
	return uint16(q)
}

// TriangleContext decodes triangles from the encoded tree buffer.
type TriangleContext struct {
	offset math32.Vector3
	scale  math32.Vector3
	verts  []byte
}

// newTriangleContext prepares decoding for one tree buffer.
func newTriangleContext(tree []byte) TriangleContext {
	header := decodeTriangleHeader(tree)
	start := nodeHeaderSize + triangleHeaderSize
	return TriangleContext{
		offset: header.Offset,
		scale:  header.Scale,
		verts:  tree[start : start+int(header.NumVertices)*vertexSize],
	}
}

// decodeVertex expands one quantized vertex from the vertex table.
func (c *TriangleContext) decodeVertex(index uint32) math32.Vector3 {
	v := c.verts[index*vertexSize:]
	return math32.Vector3{
		X: c.offset.X + float32(binary.LittleEndian.Uint16(v[0:]))*c.scale.X,
		Y: c.offset.Y + float32(binary.LittleEndian.Uint16(v[2:]))*c.scale.Y,
		Z: c.offset.Z + float32(binary.LittleEndian.Uint16(v[4:]))*c.scale.Z,
	}
}

// Triangle decodes the vertices of one triangle of a leaf block.
func (c *TriangleContext) Triangle(block []byte, triangleIdx int) (v0, v1, v2 math32.Vector3) {
	base := binary.LittleEndian.Uint32(block[blockBaseOffset:])
	i0 := uint32(block[blockIdxOffset+triangleIdx])
	i1 := uint32(block[blockIdxOffset+4+triangleIdx])
	i2 := uint32(block[blockIdxOffset+8+triangleIdx])
	return c.decodeVertex(base + i0), c.decodeVertex(base + i1), c.decodeVertex(base + i2)
}

// Unpack decodes all triangles of a leaf block into out, three vertices per
// triangle. out must hold numTriangles*3 entries.
func (c *TriangleContext) Unpack(block []byte, numTriangles int, out []math32.Vector3) {
	for i := 0; i < numTriangles; i++ {
		out[i*3], out[i*3+1], out[i*3+2] = c.Triangle(block, i)
	}
}

// Flags copies the flags bytes of a leaf block into out.
func (c *TriangleContext) Flags(block []byte, numTriangles int, out *[MaxTrianglesPerLeaf]uint8) {
	copy(out[:], block[blockFlagsOffset:blockFlagsOffset+numTriangles])
}

// TriangleFlags returns the flags byte of one triangle of a leaf block.
func TriangleFlags(block []byte, triangleIdx int) uint8 {
	return block[blockFlagsOffset+triangleIdx]
}

// TestRay returns the closest hit of the ray against the triangles of a
// leaf block that is below closest, together with the triangle index.
// Returns closest unchanged when no triangle is closer.
func (c *TriangleContext) TestRay(origin, dir math32.Vector3, block []byte, numTriangles int, closest float32) (float32, uint32) {
	triangleIdx := uint32(0)
	for i := 0; i < numTriangles; i++ {
		v0, v1, v2 := c.Triangle(block, i)
		if fraction := geometry.RayTriangle(origin, dir, v0, v1, v2); fraction < closest {
			closest = fraction
			triangleIdx = uint32(i)
		}
	}
	return closest, triangleIdx
}
