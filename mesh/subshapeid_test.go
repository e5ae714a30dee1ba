package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubShapeIDRoundtrip(t *testing.T) {
	cases := []struct {
		blockID     uint32
		blockBits   uint
		triangleIdx uint32
	}{
		{blockID: 0, blockBits: 1, triangleIdx: 0},
		{blockID: 5, blockBits: 4, triangleIdx: 3},
		{blockID: 1023, blockBits: 10, triangleIdx: 1},
		{blockID: 1<<29 - 1, blockBits: 29, triangleIdx: 2},
	}

	for _, c := range cases {
		id := SubShapeIDCreator{}.PushID(c.blockID, c.blockBits).PushID(c.triangleIdx, NumTriangleBits).ID()

		blockID, remainder := id.PopID(c.blockBits)
		assert.Equal(t, c.blockID, blockID)

		triangleIdx, remainder := remainder.PopID(NumTriangleBits)
		assert.Equal(t, c.triangleIdx, triangleIdx)
		assert.True(t, remainder.IsEmpty())
	}
}

func TestSubShapeIDEmpty(t *testing.T) {
	assert.True(t, SubShapeIDCreator{}.ID().IsEmpty())

	id := SubShapeIDCreator{}.PushID(1, 2).ID()
	assert.False(t, id.IsEmpty())
}

func TestSubShapeIDOverflowPanics(t *testing.T) {
	creator := SubShapeIDCreator{}.PushID(0, 31)
	require.Panics(t, func() {
		creator.PushID(0, 2)
	})
}

func TestSubShapeIDCreatorIsValueType(t *testing.T) {
	base := SubShapeIDCreator{}.PushID(2, 4)
	a := base.PushID(1, 2).ID()
	b := base.PushID(3, 2).ID()

	va, _ := a.PopID(4)
	vb, _ := b.PopID(4)
	assert.Equal(t, uint32(2), va)
	assert.Equal(t, uint32(2), vb)

	_, ra := a.PopID(4)
	ta, _ := ra.PopID(2)
	assert.Equal(t, uint32(1), ta)
}
