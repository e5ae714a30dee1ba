package mesh

import (
	"github.com/o0olele/trimesh-go/math32"
)

// hitCountCollector counts ray hits for the parity test and remembers the
// last sub shape ID seen.
type hitCountCollector struct {
	hitCount   int
	subShapeID SubShapeID
}

func (c *hitCountCollector) AddHit(result RayCastResult) {
	c.subShapeID = result.SubShapeID2
	c.hitCount++
}

func (c *hitCountCollector) EarlyOutFraction() float32 { return DefaultMaxFraction }

func (c *hitCountCollector) ShouldEarlyOut() bool { return false }

// CollidePoint checks if a point is inside the mesh: a ray is cast from the
// point upwards through the whole bounding box and an odd number of
// crossings means inside. Only meaningful for closed meshes.
func (s *MeshShape) CollidePoint(point math32.Vector3, creator SubShapeIDCreator, collector Collector[CollidePointResult]) {
	bounds := s.LocalBounds()
	if !bounds.Contains(point) {
		return
	}

	var counter hitCountCollector

	// Cast a ray that is 10% longer than the height of the bounding box.
	ray := RayCast{
		Origin:    point,
		Direction: math32.Vector3{Y: 1.1 * bounds.Size().Y},
	}
	s.CastRayAll(ray, RayCastSettings{BackFaceMode: CollideWithBackFaces}, creator, &counter)

	if counter.hitCount&1 == 1 {
		collector.AddHit(CollidePointResult{SubShapeID2: counter.subShapeID})
	}
}
