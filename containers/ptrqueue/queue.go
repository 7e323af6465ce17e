package ptrqueue

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/joshuapare/corekit/internal/pow2"
)

// Queue is a lock-free bounded MPMC ring of *T. A nil slot is empty.
//
// The cursors sit on separate cache lines so producers and consumers do not
// invalidate each other's line on every increment.
type Queue[T any] struct {
	_     cpu.CacheLinePad
	write atomic.Uint32 // successful pushes
	_     cpu.CacheLinePad
	read  atomic.Uint32 // successful pops
	_     cpu.CacheLinePad

	width atomic.Uint32
	slots []atomic.Pointer[T]
}

// maxWidth keeps write-read representable as a non-negative int32 in Size.
const maxWidth = 1 << 30

// New creates a queue whose width is capacity rounded up to the next power of two.
// Capacity must be in [1, 1<<30].
func New[T any](capacity uint32) (*Queue[T], error) {
	width := pow2.Next(capacity)
	if width == 0 || width > maxWidth {
		return nil, precondition(ErrCapacity, "ptrqueue: new capacity %d", capacity)
	}
	q := &Queue[T]{
		slots: make([]atomic.Pointer[T], width),
	}
	q.width.Store(width)
	return q, nil
}

// Destroy drops the slot array. Values still queued are abandoned; the caller owns
// whatever they reference. Must not race with any other call.
func (q *Queue[T]) Destroy() {
	q.slots = nil
	q.width.Store(0)
	q.write.Store(0)
	q.read.Store(0)
}

// Capacity returns the slot count (a power of two), or 0 after Destroy.
func (q *Queue[T]) Capacity() uint32 {
	return q.width.Load()
}

// Size returns the number of occupied slots.
//
// Under contention a pop can land between another goroutine's slot CAS and its cursor
// increment, so the raw difference may briefly leave [0, Capacity]; it is clamped.
func (q *Queue[T]) Size() uint32 {
	w := q.write.Load()
	r := q.read.Load()
	d := int32(w - r)
	if d <= 0 {
		return 0
	}
	if width := q.width.Load(); uint32(d) > width {
		return width
	}
	return uint32(d)
}

// TryPush installs v into the first empty slot found scanning from the write cursor.
// It returns false when the queue is full, or when no empty slot was claimed within
// Capacity attempts because of contention; callers retry.
//
// v must not be nil. The caller must also not push a pointer that may still be resident
// in the queue or concurrently being popped elsewhere (for example an object recycled from
// a pool before its consumer released it): slots are matched by pointer identity, so two
// live copies of one pointer are indistinguishable.
func (q *Queue[T]) TryPush(v *T) bool {
	if v == nil {
		panic(precondition(ErrNilValue, "ptrqueue: push"))
	}

	width := q.width.Load()
	if width == 0 {
		return false
	}
	mask := width - 1
	slots := q.slots

	start := q.write.Load()
	for n := uint32(0); n < width; n++ {
		if q.Size() >= width {
			return false
		}
		slot := &slots[(start+n)&mask]
		if slot.Load() == nil && slot.CompareAndSwap(nil, v) {
			q.write.Add(1)
			return true
		}
	}
	return false
}

// TryPop clears the first occupied slot found scanning from the read cursor and returns
// its value. It returns nil when the queue is empty, or when every candidate slot was
// taken by another consumer within Capacity attempts; callers retry.
func (q *Queue[T]) TryPop() *T {
	width := q.width.Load()
	if width == 0 {
		return nil
	}
	mask := width - 1
	slots := q.slots

	start := q.read.Load()
	for n := uint32(0); n < width; n++ {
		if q.Size() == 0 {
			return nil
		}
		slot := &slots[(start+n)&mask]
		if v := slot.Load(); v != nil && slot.CompareAndSwap(v, nil) {
			q.read.Add(1)
			return v
		}
	}
	return nil
}
