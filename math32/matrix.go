package math32

// Matrix4 is a 4x4 transform matrix, row-major: m[row][col]. The fourth row
// is implied to be (0, 0, 0, 1) by all operations.
type Matrix4 struct {
	M [4][4]float32
}

// Matrix4Identity returns the identity matrix.
func Matrix4Identity() Matrix4 {
	var m Matrix4
	m.M[0][0] = 1
	m.M[1][1] = 1
	m.M[2][2] = 1
	m.M[3][3] = 1
	return m
}

// Matrix4RotationTranslation builds the transform that rotates by rot and
// then translates by pos.
func Matrix4RotationTranslation(rot Quaternion, pos Vector3) Matrix4 {
	m := Matrix4Identity()
	x, y, z, w := rot.X, rot.Y, rot.Z, rot.W
	m.M[0][0] = 1 - 2*(y*y+z*z)
	m.M[0][1] = 2 * (x*y - w*z)
	m.M[0][2] = 2 * (x*z + w*y)
	m.M[1][0] = 2 * (x*y + w*z)
	m.M[1][1] = 1 - 2*(x*x+z*z)
	m.M[1][2] = 2 * (y*z - w*x)
	m.M[2][0] = 2 * (x*z - w*y)
	m.M[2][1] = 2 * (y*z + w*x)
	m.M[2][2] = 1 - 2*(x*x+y*y)
	m.M[0][3] = pos.X
	m.M[1][3] = pos.Y
	m.M[2][3] = pos.Z
	return m
}

// Matrix4InverseRotationTranslation builds the inverse of
// Matrix4RotationTranslation(rot, pos).
func Matrix4InverseRotationTranslation(rot Quaternion, pos Vector3) Matrix4 {
	m := Matrix4RotationTranslation(rot.Conjugate(), Vector3{})
	t := m.MulDirection(pos.Mul(-1))
	m.M[0][3] = t.X
	m.M[1][3] = t.Y
	m.M[2][3] = t.Z
	return m
}

// Matrix4Translation builds a pure translation matrix.
func Matrix4Translation(pos Vector3) Matrix4 {
	m := Matrix4Identity()
	m.M[0][3] = pos.X
	m.M[1][3] = pos.Y
	m.M[2][3] = pos.Z
	return m
}

// Matrix4Scale builds a non-uniform scale matrix.
func Matrix4Scale(scale Vector3) Matrix4 {
	var m Matrix4
	m.M[0][0] = scale.X
	m.M[1][1] = scale.Y
	m.M[2][2] = scale.Z
	m.M[3][3] = 1
	return m
}

// Mul multiplies two matrices, applying other first.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.M[r][k] * other.M[k][c]
			}
			out.M[r][c] = sum
		}
	}
	return out
}

// MulPoint transforms a point (applies rotation, scale and translation).
func (m Matrix4) MulPoint(v Vector3) Vector3 {
	return Vector3{
		m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z + m.M[0][3],
		m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z + m.M[1][3],
		m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z + m.M[2][3],
	}
}

// MulDirection transforms a direction (ignores translation).
func (m Matrix4) MulDirection(v Vector3) Vector3 {
	return Vector3{
		m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// InverseRigid inverts a rotation + translation matrix (no scale) by
// transposing the rotation part.
func (m Matrix4) InverseRigid() Matrix4 {
	out := Matrix4Identity()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.M[r][c] = m.M[c][r]
		}
	}
	t := out.MulDirection(m.Translation().Mul(-1))
	out.M[0][3] = t.X
	out.M[1][3] = t.Y
	out.M[2][3] = t.Z
	return out
}

// Axis returns the i-th basis column of the rotation part.
func (m Matrix4) Axis(i int) Vector3 {
	return Vector3{m.M[0][i], m.M[1][i], m.M[2][i]}
}

// Translation returns the translation column.
func (m Matrix4) Translation() Vector3 {
	return Vector3{m.M[0][3], m.M[1][3], m.M[2][3]}
}
