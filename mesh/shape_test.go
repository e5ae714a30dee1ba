package mesh

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

type namedMaterial struct {
	name string
}

func (m *namedMaterial) MaterialName() string { return m.name }

// cubeMesh returns the unit cube as 12 CCW (outward facing) triangles.
// With materials, the two triangles of face i use material index i.
func cubeMesh(withMaterials bool) ([]math32.Vector3, []IndexedTriangle) {
	vertices := []math32.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	faces := [6][4]uint32{
		{0, 3, 2, 1}, // z = 0
		{4, 5, 6, 7}, // z = 1
		{0, 1, 5, 4}, // y = 0
		{3, 7, 6, 2}, // y = 1
		{0, 4, 7, 3}, // x = 0
		{1, 2, 6, 5}, // x = 1
	}
	var triangles []IndexedTriangle
	for face, quad := range faces {
		var material uint32
		if withMaterials {
			material = uint32(face)
		}
		triangles = append(triangles,
			IndexedTriangle{Idx: [3]uint32{quad[0], quad[1], quad[2]}, MaterialIndex: material},
			IndexedTriangle{Idx: [3]uint32{quad[0], quad[2], quad[3]}, MaterialIndex: material},
		)
	}
	return vertices, triangles
}

func cubeMaterials() []Material {
	names := []string{"stone", "wood", "metal", "grass", "ice", "sand"}
	materials := make([]Material, len(names))
	for i, name := range names {
		materials[i] = &namedMaterial{name: name}
	}
	return materials
}

func buildCube(t *testing.T) *MeshShape {
	t.Helper()
	vertices, triangles := cubeMesh(true)
	shape, err := NewSettings(vertices, triangles, cubeMaterials()).Create()
	require.NoError(t, err)
	return shape
}

func TestCreateUnitCube(t *testing.T) {
	shape := buildCube(t)

	bounds := shape.LocalBounds()
	assert.Equal(t, math32.Vector3{X: 0, Y: 0, Z: 0}, bounds.Min)
	assert.Equal(t, math32.Vector3{X: 1, Y: 1, Z: 1}, bounds.Max)

	stats := shape.GetStats()
	assert.Equal(t, 12, stats.NumTriangles)
	assert.Greater(t, stats.SizeBytes, 0)

	// The sub shape ID budget holds.
	assert.LessOrEqual(t, shape.SubShapeIDBits(), uint(SubShapeIDMaxBits))
}

func TestCreateErrors(t *testing.T) {
	vertices, triangles := cubeMesh(false)

	t.Run("empty", func(t *testing.T) {
		_, err := NewSettings(nil, nil, nil).Create()
		assert.ErrorIs(t, err, ErrEmptyTriangles)
	})

	t.Run("degenerate", func(t *testing.T) {
		settings := &Settings{
			TriangleVertices: vertices,
			IndexedTriangles: []IndexedTriangle{{Idx: [3]uint32{0, 0, 1}}},
		}
		_, err := settings.Create()
		assert.ErrorIs(t, err, ErrDegenerateTriangle)
		assert.ErrorContains(t, err, "triangle 0")
	})

	t.Run("index out of range", func(t *testing.T) {
		settings := &Settings{
			TriangleVertices: vertices,
			IndexedTriangles: []IndexedTriangle{{Idx: [3]uint32{0, 1, 99}}},
		}
		_, err := settings.Create()
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.ErrorContains(t, err, "99")
	})

	t.Run("too many materials", func(t *testing.T) {
		materials := make([]Material, FlagsMaterialMask+2)
		for i := range materials {
			materials[i] = &namedMaterial{name: fmt.Sprintf("m%d", i)}
		}
		_, err := NewSettings(vertices, triangles, materials).Create()
		assert.ErrorIs(t, err, ErrTooManyMaterials)
	})

	t.Run("material out of range", func(t *testing.T) {
		bad := make([]IndexedTriangle, len(triangles))
		copy(bad, triangles)
		bad[3].MaterialIndex = 7
		_, err := NewSettings(vertices, bad, []Material{&namedMaterial{name: "only"}}).Create()
		assert.ErrorIs(t, err, ErrMaterialOutOfRange)
		assert.ErrorContains(t, err, "triangle 3")
	})

	t.Run("missing materials", func(t *testing.T) {
		bad := make([]IndexedTriangle, len(triangles))
		copy(bad, triangles)
		bad[5].MaterialIndex = 1
		_, err := NewSettings(vertices, bad, nil).Create()
		assert.ErrorIs(t, err, ErrMissingMaterial)
	})
}

func TestCreateCachesResult(t *testing.T) {
	vertices, triangles := cubeMesh(false)
	settings := NewSettings(vertices, triangles, nil)

	first, err := settings.Create()
	require.NoError(t, err)
	second, err := settings.Create()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCreateDeduplicatesInput(t *testing.T) {
	// A duplicated and a degenerate triangle collapse to one.
	vertices := []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	triangles := []IndexedTriangle{
		{Idx: [3]uint32{0, 1, 2}},
		{Idx: [3]uint32{0, 1, 2}},
		{Idx: [3]uint32{0, 0, 1}},
	}

	shape, err := NewSettings(vertices, triangles, nil).Create()
	require.NoError(t, err)
	assert.Equal(t, 1, shape.GetStats().NumTriangles)
}

func TestCastRayCube(t *testing.T) {
	shape := buildCube(t)

	ray := RayCast{
		Origin:    math32.Vector3{X: 0.5, Y: 0.5, Z: -1},
		Direction: math32.Vector3{X: 0, Y: 0, Z: 1},
	}
	hit := NewRayCastResult()
	require.True(t, shape.CastRay(ray, SubShapeIDCreator{}, &hit))
	assert.InDelta(t, 1.0, hit.Fraction, 1e-6)

	// The hit triangle is on the z=0 face, which uses the first material.
	assert.Equal(t, "stone", shape.GetMaterial(hit.SubShapeID2).MaterialName())

	// The surface normal points out of the cube.
	normal := shape.GetSurfaceNormal(hit.SubShapeID2, ray.Origin.Add(ray.Direction.Mul(hit.Fraction)))
	assert.InDelta(t, -1.0, normal.Z, 1e-4)
	assert.InDelta(t, 0.0, normal.X, 1e-4)
	assert.InDelta(t, 0.0, normal.Y, 1e-4)
}

func TestCastRayMiss(t *testing.T) {
	shape := buildCube(t)

	ray := RayCast{
		Origin:    math32.Vector3{X: 3, Y: 0.5, Z: -1},
		Direction: math32.Vector3{X: 0, Y: 0, Z: 1},
	}
	hit := NewRayCastResult()
	assert.False(t, shape.CastRay(ray, SubShapeIDCreator{}, &hit))
}

func TestCastRayRespectsUpperBound(t *testing.T) {
	shape := buildCube(t)

	ray := RayCast{
		Origin:    math32.Vector3{X: 0.5, Y: 0.5, Z: -1},
		Direction: math32.Vector3{X: 0, Y: 0, Z: 1},
	}
	hit := RayCastResult{Fraction: 0.5}
	assert.False(t, shape.CastRay(ray, SubShapeIDCreator{}, &hit))
	assert.Equal(t, float32(0.5), hit.Fraction)
}

func TestCastRayAllAgainstNearest(t *testing.T) {
	shape := buildCube(t)

	// Rays from outside the cube towards its center: the nearest hit must
	// agree with the minimum fraction of the all-hits cast ignoring back
	// faces.
	origins := []math32.Vector3{
		{X: 0.5, Y: 0.5, Z: -2},
		{X: -1.5, Y: 0.25, Z: 0.25},
		{X: 0.75, Y: 3, Z: 0.75},
		{X: -1, Y: -0.8, Z: -1.2},
		{X: 2.5, Y: 1.5, Z: 0.5},
	}
	// Slightly off-center target so no ray grazes a face diagonal.
	center := math32.Vector3{X: 0.43, Y: 0.57, Z: 0.52}

	for i, origin := range origins {
		dir := center.Sub(origin).Mul(2) // long enough to pass through
		ray := RayCast{Origin: origin, Direction: dir}

		hit := NewRayCastResult()
		found := shape.CastRay(ray, SubShapeIDCreator{}, &hit)

		collector := NewAllHitsCollector[RayCastResult]()
		shape.CastRayAll(ray, RayCastSettings{BackFaceMode: IgnoreBackFaces}, SubShapeIDCreator{}, collector)

		require.Truef(t, found, "ray %d", i)
		require.NotEmptyf(t, collector.Hits, "ray %d", i)

		min := collector.Hits[0].Fraction
		for _, h := range collector.Hits {
			if h.Fraction < min {
				min = h.Fraction
			}
		}
		assert.Equalf(t, min, hit.Fraction, "ray %d", i)
	}
}

func TestCastRayAllBackFaces(t *testing.T) {
	shape := buildCube(t)

	// Straight through the cube: two faces front to back.
	ray := RayCast{
		Origin:    math32.Vector3{X: 0.4, Y: 0.6, Z: -1},
		Direction: math32.Vector3{X: 0, Y: 0, Z: 3},
	}

	front := NewAllHitsCollector[RayCastResult]()
	shape.CastRayAll(ray, RayCastSettings{BackFaceMode: IgnoreBackFaces}, SubShapeIDCreator{}, front)
	assert.Len(t, front.Hits, 1)

	both := NewAllHitsCollector[RayCastResult]()
	shape.CastRayAll(ray, RayCastSettings{BackFaceMode: CollideWithBackFaces}, SubShapeIDCreator{}, both)
	assert.Len(t, both.Hits, 2)
}

func TestCollidePointCube(t *testing.T) {
	shape := buildCube(t)

	// Inside. The x and z coordinates differ so the upward parity ray does
	// not graze a face diagonal.
	var inside AnyHitCollector[CollidePointResult]
	shape.CollidePoint(math32.Vector3{X: 0.4, Y: 0.5, Z: 0.55}, SubShapeIDCreator{}, &inside)
	assert.True(t, inside.HasHit)

	// Outside the bounding box.
	var outside AnyHitCollector[CollidePointResult]
	shape.CollidePoint(math32.Vector3{X: 2, Y: 0.5, Z: 0.5}, SubShapeIDCreator{}, &outside)
	assert.False(t, outside.HasHit)

	// Above the cube but inside its footprint.
	var above AnyHitCollector[CollidePointResult]
	shape.CollidePoint(math32.Vector3{X: 0.4, Y: 2, Z: 0.5}, SubShapeIDCreator{}, &above)
	assert.False(t, above.HasHit)
}

func TestSingleTriangleShape(t *testing.T) {
	vertices := []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	triangles := []IndexedTriangle{{Idx: [3]uint32{0, 1, 2}}}
	shape, err := NewSettings(vertices, triangles, nil).Create()
	require.NoError(t, err)

	ray := RayCast{
		Origin:    math32.Vector3{X: 0.25, Y: 0.25, Z: -1},
		Direction: math32.Vector3{X: 0, Y: 0, Z: 1},
	}
	hit := NewRayCastResult()
	require.True(t, shape.CastRay(ray, SubShapeIDCreator{}, &hit))
	assert.InDelta(t, 1.0, hit.Fraction, 1e-6)

	// No materials: every valid hit resolves to the default material.
	assert.Equal(t, DefaultMaterial, shape.GetMaterial(hit.SubShapeID2))
}

func TestRootBoundsMatchTriangleUnion(t *testing.T) {
	vertices, triangles := cubeMesh(false)
	shape, err := NewSettings(vertices, triangles, nil).Create()
	require.NoError(t, err)

	union := geometry.EmptyAABB()
	for i := range triangles {
		union = union.Merge(triangles[i].GetBounds(vertices))
	}

	bounds := shape.LocalBounds()
	assert.Equal(t, union.Min, bounds.Min)
	assert.Equal(t, union.Max, bounds.Max)
}

func TestQueriesAreDeterministic(t *testing.T) {
	shape := buildCube(t)

	ray := RayCast{
		Origin:    math32.Vector3{X: -0.3, Y: 0.41, Z: -0.7},
		Direction: math32.Vector3{X: 1.1, Y: 0.2, Z: 2.3},
	}

	first := NewAllHitsCollector[RayCastResult]()
	shape.CastRayAll(ray, RayCastSettings{BackFaceMode: CollideWithBackFaces}, SubShapeIDCreator{}, first)

	second := NewAllHitsCollector[RayCastResult]()
	shape.CastRayAll(ray, RayCastSettings{BackFaceMode: CollideWithBackFaces}, SubShapeIDCreator{}, second)

	require.Equal(t, len(first.Hits), len(second.Hits))
	for i := range first.Hits {
		assert.Equal(t, math32.Float32bits(first.Hits[i].Fraction), math32.Float32bits(second.Hits[i].Fraction))
		assert.Equal(t, first.Hits[i].SubShapeID2, second.Hits[i].SubShapeID2)
	}
}

func TestGetMassProperties(t *testing.T) {
	shape := buildCube(t)
	props := shape.GetMassProperties()
	assert.Equal(t, float32(0), props.Mass)
}

func TestLargeMeshBuilds(t *testing.T) {
	vertices, triangles := gridMesh(32, 32)
	shape, err := NewSettings(vertices, triangles, nil).Create()
	require.NoError(t, err)
	assert.Equal(t, len(triangles), shape.GetStats().NumTriangles)

	// Every triangle is reachable: a vertical ray through each cell center
	// hits something.
	for x := 0; x < 32; x += 5 {
		for z := 0; z < 32; z += 7 {
			ray := RayCast{
				Origin:    math32.Vector3{X: float32(x) + 0.4, Y: 1, Z: float32(z) + 0.4},
				Direction: math32.Vector3{X: 0, Y: -2, Z: 0},
			}
			hit := NewRayCastResult()
			assert.Truef(t, shape.CastRay(ray, SubShapeIDCreator{}, &hit), "cell %d,%d", x, z)
		}
	}
}

// gridMesh builds a flat grid of quads in the y=0 plane, two triangles per
// cell.
func gridMesh(width, depth int) ([]math32.Vector3, []IndexedTriangle) {
	var vertices []math32.Vector3
	for z := 0; z <= depth; z++ {
		for x := 0; x <= width; x++ {
			vertices = append(vertices, math32.Vector3{X: float32(x), Y: 0, Z: float32(z)})
		}
	}
	idx := func(x, z int) uint32 { return uint32(z*(width+1) + x) }

	var triangles []IndexedTriangle
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			triangles = append(triangles,
				IndexedTriangle{Idx: [3]uint32{idx(x, z), idx(x, z+1), idx(x+1, z+1)}},
				IndexedTriangle{Idx: [3]uint32{idx(x, z), idx(x+1, z+1), idx(x+1, z)}},
			)
		}
	}
	return vertices, triangles
}
