package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRemovesDegenerateAndDuplicate(t *testing.T) {
	triangles := []IndexedTriangle{
		{Idx: [3]uint32{0, 1, 2}},
		{Idx: [3]uint32{0, 1, 2}}, // exact duplicate
		{Idx: [3]uint32{1, 2, 0}}, // rotated duplicate
		{Idx: [3]uint32{0, 0, 1}}, // degenerate
		{Idx: [3]uint32{2, 1, 0}}, // opposite winding, same vertices
		{Idx: [3]uint32{1, 2, 3}},
	}

	out := Sanitize(triangles)
	require.Len(t, out, 2)
	assert.Equal(t, [3]uint32{0, 1, 2}, out[0].Idx)
	assert.Equal(t, [3]uint32{1, 2, 3}, out[1].Idx)
}

func TestSanitizeKeepsFirstOccurrence(t *testing.T) {
	triangles := []IndexedTriangle{
		{Idx: [3]uint32{4, 5, 6}, MaterialIndex: 3},
		{Idx: [3]uint32{5, 6, 4}, MaterialIndex: 7},
	}

	out := Sanitize(triangles)
	require.Len(t, out, 1)
	assert.Equal(t, uint32(3), out[0].MaterialIndex)
}

func TestLowestIndexFirst(t *testing.T) {
	tri := IndexedTriangle{Idx: [3]uint32{5, 1, 9}}
	assert.Equal(t, [3]uint32{1, 9, 5}, tri.LowestIndexFirst().Idx)

	tri = IndexedTriangle{Idx: [3]uint32{5, 9, 1}}
	assert.Equal(t, [3]uint32{1, 5, 9}, tri.LowestIndexFirst().Idx)

	tri = IndexedTriangle{Idx: [3]uint32{1, 5, 9}}
	assert.Equal(t, [3]uint32{1, 5, 9}, tri.LowestIndexFirst().Idx)
}

func TestIsDegenerate(t *testing.T) {
	assert.True(t, (&IndexedTriangle{Idx: [3]uint32{1, 1, 2}}).IsDegenerate())
	assert.True(t, (&IndexedTriangle{Idx: [3]uint32{1, 2, 2}}).IsDegenerate())
	assert.True(t, (&IndexedTriangle{Idx: [3]uint32{2, 1, 2}}).IsDegenerate())
	assert.False(t, (&IndexedTriangle{Idx: [3]uint32{0, 1, 2}}).IsDegenerate())
}
