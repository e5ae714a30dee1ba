package mesh

import (
	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/math32"
)

// Splitter partitions a set of triangle indices into two disjoint child
// sets, chosen to reduce the surface area of the resulting bounding boxes.
// Split reports ok = false when it cannot find a split that is better than
// keeping the set together; the tree builder then falls back to an even
// split so termination does not depend on the splitter.
type Splitter interface {
	Split(indices []uint32) (left, right []uint32, ok bool)
}

// BinningSplitter scores split candidates with the surface area heuristic
// over a fixed number of centroid bins per axis (lower score is better:
// count times box area, summed over both children).
type BinningSplitter struct {
	numBins   int
	centroids []math32.Vector3
	bounds    []geometry.AABB
}

// NewBinningSplitter creates a splitter for the given triangle set.
func NewBinningSplitter(vertices []math32.Vector3, triangles []IndexedTriangle, numBins int) *BinningSplitter {
	s := &BinningSplitter{
		numBins:   numBins,
		centroids: make([]math32.Vector3, len(triangles)),
		bounds:    make([]geometry.AABB, len(triangles)),
	}
	for i := range triangles {
		s.centroids[i] = triangles[i].GetCentroid(vertices)
		s.bounds[i] = triangles[i].GetBounds(vertices)
	}
	return s
}

func surfaceArea(aabb geometry.AABB) float32 {
	side := aabb.Size()
	return side.X*side.Y + side.Y*side.Z + side.X*side.Z
}

// Split implements Splitter.
func (s *BinningSplitter) Split(indices []uint32) (left, right []uint32, ok bool) {
	if len(indices) < 2 {
		return nil, nil, false
	}

	// Bounds of the centroids; binning happens in centroid space.
	centroidBounds := geometry.EmptyAABB()
	parentBounds := geometry.EmptyAABB()
	for _, idx := range indices {
		centroidBounds = centroidBounds.Extend(s.centroids[idx])
		parentBounds = parentBounds.Merge(s.bounds[idx])
	}

	type bin struct {
		count  int
		bounds geometry.AABB
	}

	bestScore := float32(len(indices)) * surfaceArea(parentBounds)
	bestAxis := -1
	var bestSplitBin int

	binOf := func(axis int, idx uint32, lo, size float32) int {
		if size <= 0 {
			return 0
		}
		b := int(float32(s.numBins) * (s.centroids[idx].Get(axis) - lo) / size)
		if b >= s.numBins {
			b = s.numBins - 1
		}
		return b
	}

	for axis := 0; axis < 3; axis++ {
		lo := centroidBounds.Min.Get(axis)
		size := centroidBounds.Max.Get(axis) - lo
		if size < 1e-6 {
			continue
		}

		bins := make([]bin, s.numBins)
		for i := range bins {
			bins[i].bounds = geometry.EmptyAABB()
		}
		for _, idx := range indices {
			b := binOf(axis, idx, lo, size)
			bins[b].count++
			bins[b].bounds = bins[b].bounds.Merge(s.bounds[idx])
		}

		// Sweep the numBins-1 split planes; the plane after bin b puts bins
		// [0, b] left and the rest right.
		for b := 0; b < s.numBins-1; b++ {
			leftBounds := geometry.EmptyAABB()
			rightBounds := geometry.EmptyAABB()
			leftCount, rightCount := 0, 0
			for i := 0; i <= b; i++ {
				leftCount += bins[i].count
				leftBounds = leftBounds.Merge(bins[i].bounds)
			}
			for i := b + 1; i < s.numBins; i++ {
				rightCount += bins[i].count
				rightBounds = rightBounds.Merge(bins[i].bounds)
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			score := float32(leftCount)*surfaceArea(leftBounds) + float32(rightCount)*surfaceArea(rightBounds)
			if score < bestScore {
				bestScore = score
				bestAxis = axis
				bestSplitBin = b
			}
		}
	}

	if bestAxis < 0 {
		return nil, nil, false
	}

	lo := centroidBounds.Min.Get(bestAxis)
	size := centroidBounds.Max.Get(bestAxis) - lo
	for _, idx := range indices {
		if binOf(bestAxis, idx, lo, size) <= bestSplitBin {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right, true
}
