package alloc

import "github.com/cockroachdb/errors"

// Validate checks every free-list invariant:
//   - each entry has a non-negative offset and a positive size inside [0, capacity)
//   - entries are sorted by offset and never overlap
//   - no two entries are adjacent (they would have been coalesced)
//
// It returns nil when the allocator is consistent.
func (ba *BlockAllocator) Validate() error {
	var err error
	var prev HeapItem
	first := true
	var sum int64

	ba.VisitFree(func(it HeapItem) bool {
		switch {
		case it.Offset < 0:
			err = errors.Newf("free range %s has negative offset", it)
		case it.Size <= 0:
			err = errors.Newf("free range %s has non-positive size", it)
		case int64(it.Offset)+int64(it.Size) > int64(ba.capacity):
			err = errors.Newf("free range %s exceeds capacity %d", it, ba.capacity)
		case !first && prev.End() > it.Offset:
			err = errors.Newf("free ranges %s and %s overlap", prev, it)
		case !first && adjacent(prev, it):
			err = errors.Newf("free ranges %s and %s are adjacent but not coalesced", prev, it)
		}
		if err != nil {
			return false
		}
		sum += int64(it.Size)
		prev = it
		first = false
		return true
	})
	if err != nil {
		return err
	}

	if sum > int64(ba.capacity) {
		return errors.Newf("free bytes %d exceed capacity %d", sum, ba.capacity)
	}
	return nil
}
