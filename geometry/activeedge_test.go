package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/o0olele/trimesh-go/math32"
)

func TestIsEdgeActiveCoplanar(t *testing.T) {
	normal := math32.Vector3{X: 0, Y: 0, Z: 1}
	edgeDir := math32.Vector3{X: 1, Y: 0, Z: 0}
	assert.False(t, IsEdgeActive(normal, normal, edgeDir))
}

func TestIsEdgeActiveConvexRightAngle(t *testing.T) {
	// A cube edge: the top face normal and a side face normal.
	normal1 := math32.Vector3{X: 0, Y: 0, Z: 1}
	normal2 := math32.Vector3{X: 0, Y: -1, Z: 0}
	// Edge of the top face against its winding order, interior on the +Y side.
	edgeDir := math32.Vector3{X: -1, Y: 0, Z: 0}
	assert.True(t, IsEdgeActive(normal1, normal2, edgeDir))
}

func TestIsEdgeActiveConcave(t *testing.T) {
	normal1 := math32.Vector3{X: 0, Y: 0, Z: 1}
	normal2 := math32.Vector3{X: 0, Y: 1, Z: 0}
	edgeDir := math32.Vector3{X: -1, Y: 0, Z: 0}
	assert.False(t, IsEdgeActive(normal1, normal2, edgeDir))
}

func TestIsEdgeActiveThinSheet(t *testing.T) {
	// Two triangles back to back; the edge must stay collidable.
	normal := math32.Vector3{X: 0, Y: 0, Z: 1}
	assert.True(t, IsEdgeActive(normal, normal.Mul(-1), math32.Vector3{X: 1, Y: 0, Z: 0}))
}

func TestIsEdgeActiveShallowBend(t *testing.T) {
	// A 2 degree convex bend stays inactive: contacts project to the face.
	normal1 := math32.Vector3{X: 0, Y: 0, Z: 1}
	angle := float32(2 * 3.14159265 / 180)
	normal2 := math32.QuaternionFromAxisAngle(math32.Vector3{X: 1, Y: 0, Z: 0}, angle).Rotate(normal1)
	edgeDir := math32.Vector3{X: -1, Y: 0, Z: 0}
	assert.False(t, IsEdgeActive(normal1, normal2, edgeDir))
}
