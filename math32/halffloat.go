package math32

import (
	"github.com/x448/float16"
)

// Half-float helpers with directed rounding. Bounding boxes stored as half
// floats must round the minimum down and the maximum up so the stored box
// always contains the exact one.

// HalfToFloat32 converts a half float bit pattern to a float32.
func HalfToFloat32(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}

// HalfFromFloat32Floor converts v to the largest half float that is not
// greater than v.
func HalfFromFloat32Floor(v float32) uint16 {
	h := float16.Fromfloat32(v)
	if h.Float32() > v {
		return halfPrev(uint16(h))
	}
	return uint16(h)
}

// HalfFromFloat32Ceil converts v to the smallest half float that is not
// less than v.
func HalfFromFloat32Ceil(v float32) uint16 {
	h := float16.Fromfloat32(v)
	if h.Float32() < v {
		return halfNext(uint16(h))
	}
	return uint16(h)
}

// halfPrev returns the next representable half float towards -infinity.
func halfPrev(bits uint16) uint16 {
	if bits == 0x0000 || bits == 0x8000 {
		// Zero, the next value down is the smallest negative subnormal.
		return 0x8001
	}
	if bits&0x8000 != 0 {
		return bits + 1
	}
	return bits - 1
}

// halfNext returns the next representable half float towards +infinity.
func halfNext(bits uint16) uint16 {
	if bits == 0x0000 || bits == 0x8000 {
		return 0x0001
	}
	if bits&0x8000 != 0 {
		return bits - 1
	}
	return bits + 1
}
