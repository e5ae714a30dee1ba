package math32

import (
	chewxy "github.com/chewxy/math32"
)

// Quaternion represents a rotation.
type Quaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// QuaternionIdentity returns the identity rotation.
func QuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// QuaternionFromAxisAngle builds a rotation of angle radians around axis.
func QuaternionFromAxisAngle(axis Vector3, angle float32) Quaternion {
	axis = axis.Normalize()
	s := chewxy.Sin(angle * 0.5)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, chewxy.Cos(angle * 0.5)}
}

// Conjugate returns the inverse of a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Rotate rotates a vector by the quaternion.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	u := Vector3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Mul(2 * q.W)).Add(uuv.Mul(2))
}
