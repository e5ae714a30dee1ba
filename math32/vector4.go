package math32

// Vector4 holds four float32 lanes. The tree walker uses it to test the
// bounds of four child nodes as a unit (SoA layout, one lane per child).
type Vector4 [4]float32

// UVector4 holds four uint32 lanes.
type UVector4 [4]uint32

// Replicate4 returns a Vector4 with all lanes set to s.
func Replicate4(s float32) Vector4 {
	return Vector4{s, s, s, s}
}

// Mul multiplies all lanes by a scalar.
func (v Vector4) Mul(s float32) Vector4 {
	return Vector4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Add adds a scalar to all lanes.
func (v Vector4) Add(s float32) Vector4 {
	return Vector4{v[0] + s, v[1] + s, v[2] + s, v[3] + s}
}

// Min returns the lane-wise minimum of two Vector4.
func (v Vector4) Min(other Vector4) Vector4 {
	return Vector4{Min(v[0], other[0]), Min(v[1], other[1]), Min(v[2], other[2]), Min(v[3], other[3])}
}

// Max returns the lane-wise maximum of two Vector4.
func (v Vector4) Max(other Vector4) Vector4 {
	return Vector4{Max(v[0], other[0]), Max(v[1], other[1]), Max(v[2], other[2]), Max(v[3], other[3])}
}

// Sort4Reverse sorts the lanes of dist in descending order and applies the
// same permutation to props. The sort is a fixed network so equal lanes keep
// a deterministic order.
func Sort4Reverse(dist *Vector4, props *UVector4) {
	swap := func(i, j int) {
		if dist[i] < dist[j] {
			dist[i], dist[j] = dist[j], dist[i]
			props[i], props[j] = props[j], props[i]
		}
	}
	swap(0, 2)
	swap(1, 3)
	swap(0, 1)
	swap(2, 3)
	swap(1, 2)
}

// CompactBelow moves the lanes of dist that are strictly below limit to the
// front of dist and props, preserving their relative order, and returns how
// many lanes survived.
func CompactBelow(dist *Vector4, props *UVector4, limit float32) int {
	n := 0
	for i := 0; i < 4; i++ {
		if dist[i] < limit {
			dist[n] = dist[i]
			props[n] = props[i]
			n++
		}
	}
	return n
}

// CompactTrue moves the lanes of props whose mask lane is non-zero to the
// front, preserving their relative order, and returns how many lanes
// survived.
func CompactTrue(mask UVector4, props *UVector4) int {
	n := 0
	for i := 0; i < 4; i++ {
		if mask[i] != 0 {
			props[n] = props[i]
			n++
		}
	}
	return n
}
