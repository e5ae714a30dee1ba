package mesh

import (
	"encoding/binary"
	"fmt"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// The tree encoder converts the binary build tree into the byte buffer
// described in nodecodec.go. Two binary levels collapse into one quad node,
// inner nodes are emitted depth first before any leaf block, and leaf block
// bounds are computed from the quantized vertices so every stored triangle
// lies inside the bounds of its node.

type encLeaf struct {
	bounds  geometry.AABB
	base    uint32
	idx     [3][MaxTrianglesPerLeaf]uint8
	flags   [MaxTrianglesPerLeaf]uint8
	count   int
	blockID uint32
}

type encNode struct {
	bounds   geometry.AABB
	children []encChild
	index    int
}

type encChild struct {
	node *encNode
	leaf *encLeaf
}

func (c *encChild) childBounds() geometry.AABB {
	if c.leaf != nil {
		return c.leaf.bounds
	}
	return c.node.bounds
}

type treeEncoder struct {
	header   triangleHeader
	verts    []uint16 // x, y, z triples
	leaves   []*encLeaf
	nodes    []*encNode
	maxDepth int
}

// encodeTree converts the build tree into the encoded buffer.
func encodeTree(vertices []math32.Vector3, triangles []IndexedTriangle, root *treeNode, stats *BuildStats) ([]byte, error) {
	e := &treeEncoder{header: newTriangleHeader(root.bounds)}

	var rootChild encChild
	if root.triangles != nil {
		rootChild = encChild{leaf: e.convertLeaf(vertices, triangles, root.triangles)}
	} else {
		rootChild = encChild{node: e.convertNode(vertices, triangles, root)}
	}

	e.assign(rootChild, 1)
	if e.maxDepth*3+1 > StackSize {
		return nil, fmt.Errorf("%w: tree depth %d exceeds the walk stack", ErrEncodingFailure, e.maxDepth)
	}
	if len(e.leaves) > propBlockIDMask+1 {
		return nil, fmt.Errorf("%w: %d leaf blocks do not fit a properties word", ErrEncodingFailure, len(e.leaves))
	}

	e.header.NumVertices = uint32(len(e.verts) / 3)
	vertexStart := nodeHeaderSize + triangleHeaderSize
	nodeStart := vertexStart + len(e.verts)*2
	trianglesStart := nodeStart + len(e.nodes)*encodedNodeSize
	totalSize := trianglesStart + len(e.leaves)*triangleBlockSize
	if trianglesStart > propOffsetMask {
		return nil, fmt.Errorf("%w: node region of %d bytes does not fit a properties word", ErrEncodingFailure, trianglesStart)
	}

	nodeOffset := func(n *encNode) uint32 {
		return uint32(nodeStart + n.index*encodedNodeSize)
	}
	childProperties := func(c encChild) uint32 {
		if c.leaf != nil {
			return propLeafFlag | uint32(c.leaf.count-1)<<propLeafCountShift | c.leaf.blockID
		}
		return nodeOffset(c.node)
	}

	buf := make([]byte, totalSize)

	header := nodeHeader{
		RootBoundsMin:  root.bounds.Min,
		RootBoundsMax:  root.bounds.Max,
		RootProperties: childProperties(rootChild),
		TrianglesStart: uint32(trianglesStart),
		MaxDepth:       uint32(e.maxDepth),
	}
	header.encode(buf)
	e.header.encode(buf[nodeHeaderSize:])

	for i, v := range e.verts {
		binary.LittleEndian.PutUint16(buf[vertexStart+i*2:], v)
	}

	for _, n := range e.nodes {
		node := buf[nodeStart+n.index*encodedNodeSize:]
		for lane := 0; lane < 4; lane++ {
			var minBits, maxBits [3]uint16
			var props uint32
			if lane < len(n.children) {
				child := n.children[lane]
				bounds := child.childBounds()
				minBits[0] = math32.HalfFromFloat32Floor(bounds.Min.X)
				minBits[1] = math32.HalfFromFloat32Floor(bounds.Min.Y)
				minBits[2] = math32.HalfFromFloat32Floor(bounds.Min.Z)
				maxBits[0] = math32.HalfFromFloat32Ceil(bounds.Max.X)
				maxBits[1] = math32.HalfFromFloat32Ceil(bounds.Max.Y)
				maxBits[2] = math32.HalfFromFloat32Ceil(bounds.Max.Z)
				props = childProperties(child)
			} else {
				// Unused lane, min > max rejects it in every bounds test.
				minBits = [3]uint16{halfUnusedMin, halfUnusedMin, halfUnusedMin}
				maxBits = [3]uint16{halfUnusedMax, halfUnusedMax, halfUnusedMax}
				props = ^uint32(0)
			}
			for axis := 0; axis < 3; axis++ {
				binary.LittleEndian.PutUint16(node[axis*8+lane*2:], minBits[axis])
				binary.LittleEndian.PutUint16(node[24+axis*8+lane*2:], maxBits[axis])
			}
			binary.LittleEndian.PutUint32(node[48+lane*4:], props)
		}
	}

	for _, leaf := range e.leaves {
		block := buf[trianglesStart+int(leaf.blockID)*triangleBlockSize:]
		binary.LittleEndian.PutUint32(block[blockBaseOffset:], leaf.base)
		for row := 0; row < 3; row++ {
			copy(block[blockIdxOffset+row*4:], leaf.idx[row][:])
		}
		copy(block[blockFlagsOffset:], leaf.flags[:])
	}

	stats.TreeBytes = totalSize
	return buf, nil
}

// convertNode collapses two binary levels into one quad node.
func (e *treeEncoder) convertNode(vertices []math32.Vector3, triangles []IndexedTriangle, n *treeNode) *encNode {
	node := &encNode{bounds: geometry.EmptyAABB()}
	for _, half := range []*treeNode{n.left, n.right} {
		if half.triangles != nil {
			node.children = append(node.children, encChild{leaf: e.convertLeaf(vertices, triangles, half.triangles)})
			continue
		}
		for _, quarter := range []*treeNode{half.left, half.right} {
			if quarter.triangles != nil {
				node.children = append(node.children, encChild{leaf: e.convertLeaf(vertices, triangles, quarter.triangles)})
			} else {
				node.children = append(node.children, encChild{node: e.convertNode(vertices, triangles, quarter)})
			}
		}
	}
	for _, child := range node.children {
		node.bounds = node.bounds.Merge(child.childBounds())
	}
	return node
}

// convertLeaf quantizes the triangles of one leaf into a block and appends
// their vertices to the vertex table. The leaf bounds are taken from the
// decoded positions.
func (e *treeEncoder) convertLeaf(vertices []math32.Vector3, triangles []IndexedTriangle, indices []uint32) *encLeaf {
	leaf := &encLeaf{
		bounds: geometry.EmptyAABB(),
		base:   uint32(len(e.verts) / 3),
		count:  len(indices),
	}

	// Deduplicate vertices within the block so the local indices stay small.
	local := make(map[[3]uint16]uint8, MaxTrianglesPerLeaf*3)
	addVertex := func(v math32.Vector3) uint8 {
		q := [3]uint16{
			quantizeComponent(v.X, e.header.Offset.X, e.header.Scale.X),
			quantizeComponent(v.Y, e.header.Offset.Y, e.header.Scale.Y),
			quantizeComponent(v.Z, e.header.Offset.Z, e.header.Scale.Z),
		}
		if idx, ok := local[q]; ok {
			return idx
		}
		idx := uint8(len(e.verts)/3 - int(leaf.base))
		local[q] = idx
		e.verts = append(e.verts, q[0], q[1], q[2])
		decoded := math32.Vector3{
			X: e.header.Offset.X + float32(q[0])*e.header.Scale.X,
			Y: e.header.Offset.Y + float32(q[1])*e.header.Scale.Y,
			Z: e.header.Offset.Z + float32(q[2])*e.header.Scale.Z,
		}
		leaf.bounds = leaf.bounds.Extend(decoded)
		return idx
	}

	for i, triangleIdx := range indices {
		tri := &triangles[triangleIdx]
		for slot := 0; slot < 3; slot++ {
			leaf.idx[slot][i] = addVertex(vertices[tri.Idx[slot]])
		}
		leaf.flags[i] = uint8(tri.MaterialIndex & 0xFF)
	}
	return leaf
}

// assign orders inner nodes depth first and leaf blocks in encounter
// order, and tracks the quad tree depth.
func (e *treeEncoder) assign(c encChild, depth int) {
	if depth > e.maxDepth {
		e.maxDepth = depth
	}
	if c.leaf != nil {
		c.leaf.blockID = uint32(len(e.leaves))
		e.leaves = append(e.leaves, c.leaf)
		return
	}
	c.node.index = len(e.nodes)
	e.nodes = append(e.nodes, c.node)
	for _, child := range c.node.children {
		e.assign(child, depth+1)
	}
}
