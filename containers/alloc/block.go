package alloc

import (
	"os"

	"github.com/google/btree"

	"github.com/joshuapare/corekit/internal/buf"
	"github.com/joshuapare/corekit/internal/logger"
)

// Runtime debug flag for allocation logging - controlled by CORE_LOG_ALLOC env var.
var logAlloc = os.Getenv("CORE_LOG_ALLOC") != ""

// freeListDegree is the B-tree branching factor for the free list.
// Free lists are short in practice, so a small node keeps scans cache-friendly.
const freeListDegree = 16

// BlockAllocator is a first-fit free-list allocator over [0, capacity).
//   - Free list ordered by offset, non-overlapping, never two adjacent entries
//   - Alloc splits the first entry that fits, keeping the tail in place
//   - Free coalesces with the right neighbor, then the left neighbor
//
// Allocated spans are not tracked: ownership passes to the caller, who must hand the
// same HeapItem back to Free.
type BlockAllocator struct {
	capacity int32
	free     *btree.BTreeG[HeapItem]

	name     string
	validate bool

	stats Stats
}

// byOffset orders the free list ascending by offset.
func byOffset(a, b HeapItem) bool { return a.Offset < b.Offset }

// New creates an allocator whose whole range [0, capacity) is free.
//
// Parameters:
//   - capacity: size of the managed range, must be > 0
//   - opts: optional configuration (nil for defaults)
func New(capacity int32, opts *Options) (*BlockAllocator, error) {
	if opts == nil {
		opts = &Options{}
	}
	ba := &BlockAllocator{
		name:     opts.Name,
		validate: opts.ValidateEveryOp,
	}
	if err := ba.Init(capacity); err != nil {
		return nil, err
	}
	return ba, nil
}

// Init (re)initializes the allocator with a single free entry {0, capacity}.
func (ba *BlockAllocator) Init(capacity int32) error {
	if capacity <= 0 {
		return precondition(ErrBadSize, "alloc: init capacity %d", capacity)
	}
	ba.capacity = capacity
	if ba.free == nil {
		ba.free = btree.NewG(freeListDegree, byOffset)
	} else {
		ba.free.Clear(false)
	}
	ba.free.ReplaceOrInsert(HeapItem{Offset: 0, Size: capacity})
	ba.stats = Stats{}
	return nil
}

// Reset releases the free list. The allocator manages nothing until Init is called
// again; Alloc on a reset allocator reports ErrNoSpace.
func (ba *BlockAllocator) Reset() {
	ba.free = nil
	ba.capacity = 0
}

// Clear returns every byte to the free list, forgetting all outstanding allocations.
func (ba *BlockAllocator) Clear() {
	if ba.free == nil {
		return
	}
	ba.free.Clear(false)
	ba.free.ReplaceOrInsert(HeapItem{Offset: 0, Size: ba.capacity})
}

// Size returns the capacity of the managed range.
func (ba *BlockAllocator) Size() int32 { return ba.capacity }

// SizeAllocated returns capacity minus the sum of all free ranges.
func (ba *BlockAllocator) SizeAllocated() int32 {
	return ba.capacity - ba.sumFree()
}

// SizeFree returns capacity minus SizeAllocated. The usable amount can be lower
// because of fragmentation; see LargestFree.
func (ba *BlockAllocator) SizeFree() int32 {
	return ba.capacity - ba.SizeAllocated()
}

func (ba *BlockAllocator) sumFree() int32 {
	var sum int32
	ba.VisitFree(func(it HeapItem) bool {
		sum += it.Size
		return true
	})
	return sum
}

// Alloc returns the first free range (in offset order) able to hold size bytes.
// On exhaustion it returns NoItem and ErrNoSpace. A non-positive size is a
// precondition violation.
func (ba *BlockAllocator) Alloc(size int32) (HeapItem, error) {
	ba.stats.AllocCalls++

	if size <= 0 {
		return NoItem, precondition(ErrBadSize, "alloc: alloc size %d", size)
	}

	found, ok := ba.firstFit(size)
	if !ok {
		ba.stats.AllocFailures++
		if logAlloc {
			logger.Debug("alloc: no fit",
				"allocator", ba.name,
				"size", size,
				"free", ba.SizeFree(),
				"largest", ba.LargestFree().Size,
				"ranges", ba.Len())
		}
		return NoItem, ErrNoSpace
	}

	ba.free.Delete(found)
	item := found
	if found.Size > size {
		// Split: hand out the head, the tail keeps the entry's position in offset order
		var tail HeapItem
		item, tail = split(found, size)
		ba.free.ReplaceOrInsert(tail)
		ba.stats.SplitCount++
	}

	if logAlloc {
		logger.Debug("alloc",
			"allocator", ba.name,
			"size", size,
			"item", item.String(),
			"from", found.String())
	}

	ba.check("alloc")
	return item, nil
}

// firstFit walks the free list in ascending offset order.
func (ba *BlockAllocator) firstFit(size int32) (HeapItem, bool) {
	var found HeapItem
	ok := false
	ba.VisitFree(func(it HeapItem) bool {
		if it.Size >= size {
			found, ok = it, true
			return false
		}
		return true
	})
	return found, ok
}

// Free returns item to the free list and merges it with touching neighbors.
//
// The item must lie inside [0, capacity) with a positive size and must not overlap
// any free range. Violations are caller bugs and are reported as assertion failures
// wrapping ErrBadItem or ErrOverlap.
func (ba *BlockAllocator) Free(item HeapItem) error {
	ba.stats.FreeCalls++

	if _, err := buf.CheckRange(ba.capacity, item.Offset, item.Size); err != nil {
		return precondition(ErrBadItem, "alloc: free %s: %v", item, err)
	}

	left, hasLeft := ba.leftOf(item)
	right, hasRight := ba.rightOf(item)

	if hasLeft && left.End() > item.Offset {
		return precondition(ErrOverlap, "alloc: free %s overlaps free range %s", item, left)
	}
	if hasRight && right.Offset < item.End() {
		return precondition(ErrOverlap, "alloc: free %s overlaps free range %s", item, right)
	}

	merged := item

	// Coalesce forward first, then backward
	if hasRight && adjacent(merged, right) {
		ba.free.Delete(right)
		merged = combine(merged, right)
		ba.stats.CoalesceForward++
	}
	if hasLeft && adjacent(left, merged) {
		ba.free.Delete(left)
		merged = combine(left, merged)
		ba.stats.CoalesceBackward++
	}

	ba.free.ReplaceOrInsert(merged)

	if logAlloc {
		logger.Debug("free",
			"allocator", ba.name,
			"item", item.String(),
			"merged", merged.String())
	}

	ba.check("free")
	return nil
}

// leftOf returns the free entry with the greatest offset <= item.Offset.
func (ba *BlockAllocator) leftOf(item HeapItem) (HeapItem, bool) {
	var left HeapItem
	ok := false
	if ba.free == nil {
		return left, false
	}
	ba.free.DescendLessOrEqual(item, func(it HeapItem) bool {
		left, ok = it, true
		return false
	})
	return left, ok
}

// rightOf returns the free entry with the smallest offset > item.Offset.
func (ba *BlockAllocator) rightOf(item HeapItem) (HeapItem, bool) {
	var right HeapItem
	ok := false
	if ba.free == nil {
		return right, false
	}
	ba.free.AscendGreaterOrEqual(HeapItem{Offset: item.Offset + 1}, func(it HeapItem) bool {
		right, ok = it, true
		return false
	})
	return right, ok
}

// Len returns the number of entries in the free list.
func (ba *BlockAllocator) Len() int {
	if ba.free == nil {
		return 0
	}
	return ba.free.Len()
}

// VisitFree calls fn for each free range in ascending offset order until fn returns false.
func (ba *BlockAllocator) VisitFree(fn func(HeapItem) bool) {
	if ba.free == nil {
		return
	}
	ba.free.Ascend(fn)
}

// FreeItems returns a copy of the free list in ascending offset order.
func (ba *BlockAllocator) FreeItems() []HeapItem {
	items := make([]HeapItem, 0, ba.Len())
	ba.VisitFree(func(it HeapItem) bool {
		items = append(items, it)
		return true
	})
	return items
}

// LargestFree returns the biggest free range, the upper bound on what a single
// Alloc can currently satisfy. Returns {0,0} when nothing is free.
func (ba *BlockAllocator) LargestFree() HeapItem {
	var best HeapItem
	ba.VisitFree(func(it HeapItem) bool {
		if it.Size > best.Size {
			best = it
		}
		return true
	})
	return best
}

// check runs Validate after a mutation when ValidateEveryOp is set.
func (ba *BlockAllocator) check(op string) {
	if !ba.validate {
		return
	}
	if err := ba.Validate(); err != nil {
		panic(precondition(err, "alloc: invariant broken after %s", op))
	}
}
