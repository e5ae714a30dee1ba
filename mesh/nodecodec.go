package mesh

import (
	"encoding/binary"
	"math/bits"

	"github.com/o0olele/trimesh-go/math32"
)

// Encoded tree layout: a node header, a triangle header, the quantized
// vertex table, the inner nodes (depth first) and finally all leaf blocks,
// densely packed so a leaf block id is just its index within the leaf
// region.
//
// An inner node stores the bounds of its up to four children as half floats
// in SoA order (MinX[4] MinY[4] MinZ[4] MaxX[4] MaxY[4] MaxZ[4]) followed
// by four properties words. Unused child lanes have min > max.
const (
	nodeHeaderSize     = 36
	triangleHeaderSize = 28
	encodedNodeSize    = 64

	// StackSize is the traversal stack capacity; the encoder rejects trees
	// deep enough to overflow it.
	StackSize = 128

	// Properties word: bit 31 marks a leaf. For a leaf the low bits hold
	// the block id and the bits below the flag hold numTriangles-1; for an
	// inner node the low 31 bits are the child's byte offset.
	propLeafFlag       = 0x80000000
	propLeafCountBits  = 2
	propLeafCountMask  = 1<<propLeafCountBits - 1
	propLeafCountShift = 31 - propLeafCountBits
	propBlockIDMask    = 1<<propLeafCountShift - 1
	propOffsetMask     = 0x7FFFFFFF

	// Half float patterns marking an unused child lane (min > max).
	halfUnusedMin = 0x7BFF // largest finite half float
	halfUnusedMax = 0xFBFF // most negative finite half float
)

// nodeHeader is the decoded fixed header at the start of the tree buffer.
type nodeHeader struct {
	RootBoundsMin  math32.Vector3
	RootBoundsMax  math32.Vector3
	RootProperties uint32
	TrianglesStart uint32
	MaxDepth       uint32
}

func putVector3(buf []byte, v math32.Vector3) {
	binary.LittleEndian.PutUint32(buf[0:], math32.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:], math32.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:], math32.Float32bits(v.Z))
}

func getVector3(buf []byte) math32.Vector3 {
	return math32.Vector3{
		X: math32.Float32frombits(binary.LittleEndian.Uint32(buf[0:])),
		Y: math32.Float32frombits(binary.LittleEndian.Uint32(buf[4:])),
		Z: math32.Float32frombits(binary.LittleEndian.Uint32(buf[8:])),
	}
}

func (h *nodeHeader) encode(buf []byte) {
	putVector3(buf[0:], h.RootBoundsMin)
	putVector3(buf[12:], h.RootBoundsMax)
	binary.LittleEndian.PutUint32(buf[24:], h.RootProperties)
	binary.LittleEndian.PutUint32(buf[28:], h.TrianglesStart)
	binary.LittleEndian.PutUint32(buf[32:], h.MaxDepth)
}

func decodeNodeHeader(tree []byte) nodeHeader {
	return nodeHeader{
		RootBoundsMin:  getVector3(tree[0:]),
		RootBoundsMax:  getVector3(tree[12:]),
		RootProperties: binary.LittleEndian.Uint32(tree[24:]),
		TrianglesStart: binary.LittleEndian.Uint32(tree[28:]),
		MaxDepth:       binary.LittleEndian.Uint32(tree[32:]),
	}
}

// triangleBlockIDBits returns how many sub shape ID bits are needed to
// address a leaf block of this tree. Derived from the buffer itself so it
// is stable across serialization.
func triangleBlockIDBits(tree []byte) uint {
	start := binary.LittleEndian.Uint32(tree[28:])
	numBlocks := (len(tree) - int(start)) / triangleBlockSize
	return uint(bits.Len32(uint32(numBlocks)))
}

// triangleBlockStart returns the byte offset of a leaf block.
func triangleBlockStart(tree []byte, blockID uint32) int {
	start := binary.LittleEndian.Uint32(tree[28:])
	return int(start) + int(blockID)*triangleBlockSize
}

// Visitor is implemented by every query over the encoded tree. The walker
// never decodes triangle payloads itself; VisitTriangles gets the codec
// context and the raw leaf block instead.
type Visitor interface {
	// ShouldAbort is tested before each stack pop; traversal ends when it
	// returns true.
	ShouldAbort() bool

	// ShouldVisitNode lets the visitor skip a stack entry whose stored
	// metric (e.g. ray distance) is no longer interesting.
	ShouldVisitNode(stackTop int) bool

	// VisitNodes receives the bounds of four children as SoA lanes plus
	// their properties words. It must leave the children to traverse in
	// properties lanes [0, n) (the walker processes lane n-1 first) and
	// return n.
	VisitNodes(minX, minY, minZ, maxX, maxY, maxZ math32.Vector4, properties *math32.UVector4, stackTop int) int

	// VisitTriangles is called for each leaf block.
	VisitTriangles(ctx *TriangleContext, rootBoundsMin, rootBoundsMax math32.Vector3, block []byte, numTriangles int, blockID uint32)
}

// walkContext is the resumable traversal state over an encoded tree. When a
// visitor aborts inside VisitTriangles without consuming the leaf, a later
// walk resumes at that same leaf.
type walkContext struct {
	stack [StackSize]uint32
	top   int
}

func newWalkContext(root uint32) walkContext {
	var w walkContext
	w.stack[0] = root
	w.top = 0
	return w
}

// isDone checks if the walk has consumed the whole tree.
func (w *walkContext) isDone() bool {
	return w.top < 0
}

// walk runs a depth-first traversal over the encoded tree, driving the
// visitor. The generic parameter keeps the per-node calls devirtualized for
// concrete visitor types.
func walk[V Visitor](w *walkContext, tree []byte, triCtx *TriangleContext, visitor V) {
	header := decodeNodeHeader(tree)

	for w.top >= 0 {
		if visitor.ShouldAbort() {
			break
		}
		if !visitor.ShouldVisitNode(w.top) {
			w.top--
			continue
		}

		props := w.stack[w.top]
		if props&propLeafFlag != 0 {
			blockID := props & propBlockIDMask
			numTriangles := int(props>>propLeafCountShift&propLeafCountMask) + 1
			start := triangleBlockStart(tree, blockID)
			visitor.VisitTriangles(triCtx, header.RootBoundsMin, header.RootBoundsMax, tree[start:start+triangleBlockSize], numTriangles, blockID)
			if visitor.ShouldAbort() {
				// Not consumed; a resumed walk revisits this leaf.
				break
			}
			w.top--
			continue
		}

		offset := int(props & propOffsetMask)
		node := tree[offset : offset+encodedNodeSize]

		var minX, minY, minZ, maxX, maxY, maxZ math32.Vector4
		for i := 0; i < 4; i++ {
			minX[i] = math32.HalfToFloat32(binary.LittleEndian.Uint16(node[0+2*i:]))
			minY[i] = math32.HalfToFloat32(binary.LittleEndian.Uint16(node[8+2*i:]))
			minZ[i] = math32.HalfToFloat32(binary.LittleEndian.Uint16(node[16+2*i:]))
			maxX[i] = math32.HalfToFloat32(binary.LittleEndian.Uint16(node[24+2*i:]))
			maxY[i] = math32.HalfToFloat32(binary.LittleEndian.Uint16(node[32+2*i:]))
			maxZ[i] = math32.HalfToFloat32(binary.LittleEndian.Uint16(node[40+2*i:]))
		}
		var properties math32.UVector4
		for i := 0; i < 4; i++ {
			properties[i] = binary.LittleEndian.Uint32(node[48+4*i:])
		}

		n := visitor.VisitNodes(minX, minY, minZ, maxX, maxY, maxZ, &properties, w.top)
		// Replace the current entry with the children to traverse.
		for i := 0; i < n; i++ {
			w.stack[w.top+i] = properties[i]
		}
		w.top += n - 1
	}
}
