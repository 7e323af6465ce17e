// Package alloc provides a first-fit free-list allocator over an abstract address range.
//
// # Overview
//
// BlockAllocator manages offsets and sizes inside a fixed capacity [0, capacity). It never
// touches real memory: callers bind the returned offsets to whatever storage they own
// (a staging []byte, a GPU buffer, a slot table). See containers/staging for a binding to
// a byte slice.
//
// # Allocation
//
// Alloc scans the free list in ascending offset order and takes the first entry that is
// large enough. An exact fit removes the entry; a larger entry is split, the low bytes are
// returned and the tail stays in the free list at the same position:
//
//	ba, _ := alloc.New(100, nil)
//	a, _ := ba.Alloc(30) // {0,30}
//	b, _ := ba.Alloc(40) // {30,40}
//	_ = ba.Free(a)       // free list: {0,30} {70,30}
//	c, _ := ba.Alloc(10) // {0,10}, free list: {10,20} {70,30}
//
// Running out of space is an expected outcome: Alloc returns NoItem together with
// ErrNoSpace and the caller decides what to do.
//
// # Freeing and Coalescing
//
// Free inserts the item at its sorted position, then merges it with its right neighbor
// and then its left neighbor when they touch. After every Free no two free entries are
// adjacent, so fragmentation is bounded by the number of live holes.
//
// # Errors
//
// Two classes of failure are kept apart:
//
//   - ErrNoSpace: capacity exhaustion, retry later or grow elsewhere
//   - assertion failures (errors.HasAssertionFailure): caller bugs such as a zero size,
//     an out-of-range Free or a double free
//
// # Thread Safety
//
// BlockAllocator instances are not thread-safe. Callers must serialize access externally
// or keep the allocator owned by a single goroutine.
//
// # Debugging
//
// Setting CORE_LOG_ALLOC in the environment logs every allocation decision through
// internal/logger at debug level. Options.ValidateEveryOp re-checks all free-list
// invariants after each mutation.
package alloc
