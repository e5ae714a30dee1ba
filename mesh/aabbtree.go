package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// MaxTrianglesPerLeaf is the leaf capacity of the tree; a leaf block packs
// up to this many triangles.
const MaxTrianglesPerLeaf = 4

// NumTriangleBits is the number of sub shape ID bits needed to address a
// triangle within a leaf block.
const NumTriangleBits = 2

// treeNode is one node of the binary build tree. Either triangles is set
// (leaf) or both children are.
type treeNode struct {
	bounds    geometry.AABB
	left      *treeNode
	right     *treeNode
	triangles []uint32
}

// BuildStats reports what the tree builder produced.
type BuildStats struct {
	Triangles int `json:"triangles"`
	Nodes     int `json:"nodes"`
	Leafs     int `json:"leafs"`
	MaxDepth  int `json:"max_depth"`
	TreeBytes int `json:"tree_bytes"`
}

// buildAABBTree partitions the triangles into a binary tree with at most
// MaxTrianglesPerLeaf triangles per leaf. The splitter chooses partitions;
// when it fails the set is split evenly so the build always terminates.
func buildAABBTree(vertices []math32.Vector3, triangles []IndexedTriangle, splitter Splitter, stats *BuildStats) *treeNode {
	indices := make([]uint32, len(triangles))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return buildTreeNode(vertices, triangles, splitter, indices, 0, stats)
}

func buildTreeNode(vertices []math32.Vector3, triangles []IndexedTriangle, splitter Splitter, indices []uint32, depth int, stats *BuildStats) *treeNode {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node := &treeNode{bounds: geometry.EmptyAABB()}
	for _, idx := range indices {
		node.bounds = node.bounds.Merge(triangles[idx].GetBounds(vertices))
	}

	if len(indices) <= MaxTrianglesPerLeaf {
		node.triangles = indices
		stats.Leafs++
		return node
	}

	left, right, ok := splitter.Split(indices)
	if !ok || len(left) == 0 || len(right) == 0 {
		// No useful split, halve the set in input order.
		half := len(indices) / 2
		left, right = indices[:half], indices[half:]
	}

	stats.Nodes++
	node.left = buildTreeNode(vertices, triangles, splitter, left, depth+1, stats)
	node.right = buildTreeNode(vertices, triangles, splitter, right, depth+1, stats)
	return node
}
