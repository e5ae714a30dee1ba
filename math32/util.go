package math32

import (
	chewxy "github.com/chewxy/math32"
)

// MaxFloat32 is the largest finite float32 value.
const MaxFloat32 = chewxy.MaxFloat32

// Min returns the minimum of two values.
func Min[T float32 | int32](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two values.
func Max[T float32 | int32](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of a float32.
func Abs(a float32) float32 {
	return chewxy.Abs(a)
}

// Clamp limits a value to the range [lo, hi].
func Clamp(a, lo, hi float32) float32 {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

// CeilToInt returns the ceiling of a float32 as an integer.
func CeilToInt(a float32) int {
	return int(chewxy.Ceil(a))
}

// RoundToInt returns the round of a float32 as an integer.
func RoundToInt(a float32) int {
	return int(chewxy.Round(a))
}

// Sqrt returns the square root of a float32.
func Sqrt(a float32) float32 {
	return chewxy.Sqrt(a)
}

// Float32bits returns the IEEE 754 bit pattern of a float32.
func Float32bits(f float32) uint32 {
	return chewxy.Float32bits(f)
}

// Float32frombits returns the float32 for an IEEE 754 bit pattern.
func Float32frombits(b uint32) float32 {
	return chewxy.Float32frombits(b)
}
