package buf

import (
	"math"

	"github.com/cockroachdb/errors"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// AddOverflowSafe32 is the int32 variant used for allocator offsets.
func AddOverflowSafe32(a, b int32) (int32, bool) {
	switch {
	case b > 0 && a > math.MaxInt32-b:
		return 0, false
	case b < 0 && a < math.MinInt32-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that the span [offset, offset+size) is non-empty and lies
// within [0, capacity). Returns the exclusive end offset if valid, or an error
// describing the specific failure (negative field, overflow or out of bounds).
//
//	end, err := buf.CheckRange(capacity, item.Offset, item.Size)
//	if err != nil {
//	    return errors.Wrap(err, "free")
//	}
func CheckRange(capacity, offset, size int32) (int32, error) {
	if offset < 0 {
		return 0, errors.Newf("negative offset: %d", offset)
	}
	if size <= 0 {
		return 0, errors.Newf("non-positive size: %d", size)
	}

	end, ok := AddOverflowSafe32(offset, size)
	if !ok {
		return 0, errors.Newf("overflow: offset=%d + size=%d", offset, size)
	}

	if end > capacity {
		return 0, errors.Newf("bounds: end=%d > capacity=%d", end, capacity)
	}

	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
