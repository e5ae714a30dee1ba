package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o0olele/trimesh-go/math32"
)

func TestBinningSplitterSplitsDisjoint(t *testing.T) {
	vertices, triangles := gridMesh(16, 16)
	splitter := NewBinningSplitter(vertices, triangles, 32)

	indices := make([]uint32, len(triangles))
	for i := range indices {
		indices[i] = uint32(i)
	}

	left, right, ok := splitter.Split(indices)
	require.True(t, ok)
	require.NotEmpty(t, left)
	require.NotEmpty(t, right)
	assert.Equal(t, len(indices), len(left)+len(right))

	seen := make(map[uint32]bool, len(indices))
	for _, idx := range append(append([]uint32{}, left...), right...) {
		assert.False(t, seen[idx], "index %d assigned twice", idx)
		seen[idx] = true
	}
}

func TestBinningSplitterRefusesTinySets(t *testing.T) {
	vertices, triangles := gridMesh(1, 1)
	splitter := NewBinningSplitter(vertices, triangles, 32)

	_, _, ok := splitter.Split([]uint32{0})
	assert.False(t, ok)
}

func TestBinningSplitterIdenticalCentroids(t *testing.T) {
	// Centroids that coincide on two axes; whatever the splitter reports,
	// it must never produce an empty side.
	vertices := []math32.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 0.5}, {X: 1, Y: 0, Z: 0.5}, {X: 0, Y: 1, Z: 0.5},
	}
	// Two stacked triangles with the same centroid in x and y; their z
	// centroids differ, so splitting along z is still possible.
	triangles := []IndexedTriangle{
		{Idx: [3]uint32{0, 1, 2}},
		{Idx: [3]uint32{3, 4, 5}},
	}
	splitter := NewBinningSplitter(vertices, triangles, 8)

	left, right, ok := splitter.Split([]uint32{0, 1})
	if ok {
		assert.Len(t, left, 1)
		assert.Len(t, right, 1)
	}
}

func TestCustomSplitterIsUsed(t *testing.T) {
	vertices, triangles := gridMesh(4, 4)
	settings := NewSettings(vertices, triangles, nil)
	splitter := &countingSplitter{inner: NewBinningSplitter(vertices, settings.IndexedTriangles, 32)}
	settings.Splitter = splitter

	shape, err := settings.Create()
	require.NoError(t, err)
	assert.Equal(t, len(triangles), shape.GetStats().NumTriangles)
	assert.Greater(t, splitter.calls, 0)
}

type countingSplitter struct {
	inner Splitter
	calls int
}

func (s *countingSplitter) Split(indices []uint32) ([]uint32, []uint32, bool) {
	s.calls++
	return s.inner.Split(indices)
}
