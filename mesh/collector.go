package mesh

import (
	"github.com/o0olele/trimesh-go/math32"
)

// DefaultMaxFraction is the initial upper bound for cast fractions: hits at
// the very end of the cast are still reported.
const DefaultMaxFraction float32 = 1.0 + 1.0e-6

// RayCastResult is one hit of a ray cast.
type RayCastResult struct {
	Fraction    float32
	SubShapeID2 SubShapeID
}

// HitFraction implements FractionHit.
func (r RayCastResult) HitFraction() float32 { return r.Fraction }

// NewRayCastResult returns a result primed with the default fraction upper
// bound.
func NewRayCastResult() RayCastResult {
	return RayCastResult{Fraction: DefaultMaxFraction}
}

// CollidePointResult is one hit of a point containment query.
type CollidePointResult struct {
	SubShapeID2 SubShapeID
}

// ShapeCastResult is one hit of a swept convex shape cast.
type ShapeCastResult struct {
	Fraction        float32
	ContactPointOn2 math32.Vector3
	PenetrationAxis math32.Vector3
	SubShapeID1     SubShapeID
	SubShapeID2     SubShapeID
}

// HitFraction implements FractionHit.
func (r ShapeCastResult) HitFraction() float32 { return r.Fraction }

// CollideShapeResult is one contact of a convex vs mesh overlap query.
type CollideShapeResult struct {
	ContactPointOn1  math32.Vector3
	ContactPointOn2  math32.Vector3
	PenetrationAxis  math32.Vector3
	PenetrationDepth float32
	SubShapeID1      SubShapeID
	SubShapeID2      SubShapeID
}

// FractionHit is implemented by results that carry a cast fraction.
type FractionHit interface {
	HitFraction() float32
}

// Collector receives the hits of a query. EarlyOutFraction bounds the
// traversal (it must never increase during a query) and ShouldEarlyOut
// requests cooperative cancellation; the walker checks it before expanding
// each node.
type Collector[T any] interface {
	AddHit(result T)
	EarlyOutFraction() float32
	ShouldEarlyOut() bool
}

// AllHitsCollector collects every hit below MaxFraction in visit order.
type AllHitsCollector[T any] struct {
	MaxFraction float32
	Hits        []T
}

// NewAllHitsCollector creates an all-hits collector bounded by the default
// cast fraction.
func NewAllHitsCollector[T any]() *AllHitsCollector[T] {
	return &AllHitsCollector[T]{MaxFraction: DefaultMaxFraction}
}

// AddHit implements Collector.
func (c *AllHitsCollector[T]) AddHit(result T) {
	c.Hits = append(c.Hits, result)
}

// EarlyOutFraction implements Collector.
func (c *AllHitsCollector[T]) EarlyOutFraction() float32 { return c.MaxFraction }

// ShouldEarlyOut implements Collector.
func (c *AllHitsCollector[T]) ShouldEarlyOut() bool { return false }

// ClosestHitCollector keeps only the hit with the smallest fraction and
// narrows the traversal bound as hits arrive.
type ClosestHitCollector[T FractionHit] struct {
	Hit      T
	HasHit   bool
	fraction float32
}

// NewClosestHitCollector creates a closest-hit collector bounded by the
// default cast fraction.
func NewClosestHitCollector[T FractionHit]() *ClosestHitCollector[T] {
	return &ClosestHitCollector[T]{fraction: DefaultMaxFraction}
}

// AddHit implements Collector.
func (c *ClosestHitCollector[T]) AddHit(result T) {
	if result.HitFraction() < c.fraction {
		c.fraction = result.HitFraction()
		c.Hit = result
		c.HasHit = true
	}
}

// EarlyOutFraction implements Collector.
func (c *ClosestHitCollector[T]) EarlyOutFraction() float32 { return c.fraction }

// ShouldEarlyOut implements Collector.
func (c *ClosestHitCollector[T]) ShouldEarlyOut() bool { return false }

// AnyHitCollector stops the query at the first hit.
type AnyHitCollector[T any] struct {
	Hit    T
	HasHit bool
}

// AddHit implements Collector.
func (c *AnyHitCollector[T]) AddHit(result T) {
	if !c.HasHit {
		c.Hit = result
		c.HasHit = true
	}
}

// EarlyOutFraction implements Collector.
func (c *AnyHitCollector[T]) EarlyOutFraction() float32 {
	if c.HasHit {
		return 0
	}
	return DefaultMaxFraction
}

// ShouldEarlyOut implements Collector.
func (c *AnyHitCollector[T]) ShouldEarlyOut() bool { return c.HasHit }
