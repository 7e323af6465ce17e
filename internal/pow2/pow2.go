// Package pow2 provides power-of-two rounding used by the ring-indexed containers.
// Widths are kept at powers of two so that cursor wraparound is a mask, not a modulo.
package pow2

import "math/bits"

// Next returns the smallest power of two >= n.
//
// Example:
//
//	Next(0) = 0
//	Next(1) = 1
//	Next(3) = 4
//	Next(16) = 16
//	Next(17) = 32
//
// Values above 1<<31 have no uint32 power of two and return 0.
func Next(n uint32) uint32 {
	if n <= 1 {
		return n
	}
	shift := bits.Len32(n - 1)
	if shift >= 32 {
		return 0
	}
	return 1 << shift
}

// NextI32 is the int32 variant used by ringq cursors. Negative inputs return 0,
// as do inputs whose next power of two does not fit in an int32.
func NextI32(n int32) int32 {
	if n <= 0 {
		return 0
	}
	w := Next(uint32(n))
	if w > 1<<30 {
		return 0
	}
	return int32(w)
}

// Is reports whether n is a power of two. Zero is not.
func Is(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
