package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o0olele/trimesh-go/math32"
)

func activeEdgeBits(tri *IndexedTriangle) uint32 {
	return tri.MaterialIndex >> FlagsActiveEdgeShift & FlagsActiveEdgeMask
}

func countBits(v uint32) int {
	n := 0
	for ; v != 0; v &= v - 1 {
		n++
	}
	return n
}

func TestActiveEdgesSingleTriangle(t *testing.T) {
	vertices := []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	triangles := []IndexedTriangle{{Idx: [3]uint32{0, 1, 2}}}

	findActiveEdges(vertices, triangles)

	// All three boundary edges are active.
	assert.Equal(t, uint32(FlagsActiveEdgeMask), activeEdgeBits(&triangles[0]))
	// The material bits are untouched.
	assert.Equal(t, uint32(0), triangles[0].MaterialIndex&FlagsMaterialMask)
}

func TestActiveEdgesCube(t *testing.T) {
	vertices, triangles := cubeMesh(false)
	findActiveEdges(vertices, triangles)

	// Each face triangle has two cube edges (active) and one face diagonal
	// (coplanar neighbor, inactive).
	total := 0
	for i := range triangles {
		bits := activeEdgeBits(&triangles[i])
		assert.Equalf(t, 2, countBits(bits), "triangle %d has active edges %03b", i, bits)
		total += countBits(bits)
	}
	// 12 cube edges, each shared by two triangles.
	assert.Equal(t, 24, total)
}

func TestActiveEdgesCoplanarPair(t *testing.T) {
	// Two coplanar triangles forming a quad; the shared edge is inactive,
	// the boundary edges are active.
	vertices := []math32.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	}
	triangles := []IndexedTriangle{
		{Idx: [3]uint32{0, 1, 2}},
		{Idx: [3]uint32{0, 2, 3}},
	}

	findActiveEdges(vertices, triangles)

	// Triangle 0: edges (0-1) boundary, (1-2) boundary, (2-0) shared.
	assert.Equal(t, uint32(0b011), activeEdgeBits(&triangles[0]))
	// Triangle 1: edges (0-2) shared, (2-3) boundary, (3-0) boundary.
	assert.Equal(t, uint32(0b110), activeEdgeBits(&triangles[1]))
}

func TestActiveEdgesNonManifold(t *testing.T) {
	// Three triangles sharing the edge 0-1 ("T" shape); the shared edge is
	// active in all of them.
	vertices := []math32.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	triangles := []IndexedTriangle{
		{Idx: [3]uint32{0, 1, 2}},
		{Idx: [3]uint32{0, 3, 1}},
		{Idx: [3]uint32{0, 1, 4}},
	}

	findActiveEdges(vertices, triangles)

	require.NotZero(t, triangles[0].MaterialIndex>>FlagsActiveEdgeShift&0b001) // edge 0-1 is slot 0
	require.NotZero(t, triangles[1].MaterialIndex>>FlagsActiveEdgeShift&0b100) // edge 1-0 is slot 2
	require.NotZero(t, triangles[2].MaterialIndex>>FlagsActiveEdgeShift&0b001) // edge 0-1 is slot 0
}
