package alloc

import "fmt"

// HeapItem is a contiguous span [Offset, Offset+Size) inside an allocator's range.
// It describes either a free range or an allocation handed to a caller.
type HeapItem struct {
	Offset int32
	Size   int32
}

// NoItem is returned by Alloc when no free range fits the request.
var NoItem = HeapItem{Offset: -1, Size: -1}

// End returns the exclusive end offset.
func (it HeapItem) End() int32 { return it.Offset + it.Size }

// Valid reports whether the item came from a successful Alloc.
func (it HeapItem) Valid() bool { return it.Offset >= 0 && it.Size > 0 }

func (it HeapItem) String() string {
	return fmt.Sprintf("{%d,%d}", it.Offset, it.Size)
}

// adjacent reports whether rhs starts exactly where lhs ends.
func adjacent(lhs, rhs HeapItem) bool { return lhs.End() == rhs.Offset }

// combine merges two adjacent items into one.
func combine(lhs, rhs HeapItem) HeapItem {
	return HeapItem{Offset: lhs.Offset, Size: lhs.Size + rhs.Size}
}

// split carves the low size bytes off it and returns (head, tail).
func split(it HeapItem, size int32) (HeapItem, HeapItem) {
	return HeapItem{Offset: it.Offset, Size: size},
		HeapItem{Offset: it.Offset + size, Size: it.Size - size}
}

// Options configures a BlockAllocator. A nil *Options selects the defaults.
type Options struct {
	// Name labels the allocator in debug logs and detailed maps.
	Name string

	// ValidateEveryOp re-checks all free-list invariants after each Alloc/Free
	// and panics with an assertion failure if one is broken. Meant for tests.
	ValidateEveryOp bool
}
