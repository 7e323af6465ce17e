package ringq

import (
	"math"

	"github.com/joshuapare/corekit/internal/pow2"
)

// minGrowWidth is the smallest width a growing queue allocates.
const minGrowWidth = 16

// Queue is a FIFO circular buffer with amortized O(1) push.
//
// Invariants: len(buf) is zero or a power of two; 0 <= tail-head <= len(buf);
// logical element i is buf[(head+i)&(len(buf)-1)].
type Queue[T any] struct {
	buf  []T
	head uint32
	tail uint32
}

// New returns a queue with room for at least capacity elements.
func New[T any](capacity int) *Queue[T] {
	q := &Queue[T]{}
	q.Reserve(capacity)
	return q
}

// Init puts the queue in its empty state without a buffer. The zero value is
// already initialized.
func (q *Queue[T]) Init() {
	*q = Queue[T]{}
}

// Reset releases the buffer and empties the queue.
func (q *Queue[T]) Reset() {
	q.buf = nil
	q.head = 0
	q.tail = 0
}

// Clear empties the queue and keeps the buffer for reuse.
func (q *Queue[T]) Clear() {
	clear(q.buf)
	q.head = 0
	q.tail = 0
}

// Trim shrinks the buffer to the smallest power of two holding the current contents.
func (q *Queue[T]) Trim() {
	q.FitTo(q.Len())
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return int(q.tail - q.head) }

// Cap returns the buffer width.
func (q *Queue[T]) Cap() int { return len(q.buf) }

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool { return q.tail == q.head }

// HasItems reports whether the queue holds at least one element.
func (q *Queue[T]) HasItems() bool { return q.tail != q.head }

func (q *Queue[T]) mask() uint32 { return uint32(len(q.buf)) - 1 }

// index maps logical position i to a buffer index.
func (q *Queue[T]) index(i int) uint32 {
	return (q.head + uint32(i)) & q.mask()
}

// Reserve makes room for n elements, growing to max(n, 2×Cap(), 16) when needed.
func (q *Queue[T]) Reserve(n int) {
	if n < 0 {
		panic(violation(ErrSize, "ringq: reserve %d", n))
	}
	width := len(q.buf)
	if n > width {
		q.FitTo(max(n, width*2, minGrowWidth))
	}
}

// FitTo resizes the buffer to NextPow2(n). n must be at least Len().
func (q *Queue[T]) FitTo(n int) {
	if n < 0 || n > math.MaxInt32 {
		panic(violation(ErrSize, "ringq: fit to %d", n))
	}
	newWidth := pow2.NextI32(int32(n))
	if n > 0 && newWidth == 0 {
		panic(violation(ErrSize, "ringq: fit to %d exceeds the largest width", n))
	}
	if q.Len() > int(newWidth) {
		panic(violation(ErrSize, "ringq: fit to %d would drop %d elements", n, q.Len()-int(newWidth)))
	}
	q.rebase(int(newWidth))
}

// rebase relocates the circular window [head, tail) into a buffer of newWidth.
//
//  1. same width: nothing to do
//  2. window does not wrap: slide it to index 0 in place, then resize
//  3. newWidth >= 2×oldWidth: resize, copy the unrotated window into the upper half,
//     which cannot overlap the still-live lower half
//  4. otherwise: unrotate into a fresh buffer
//
// Slots vacated by a move are zeroed so the buffer does not pin dead values.
func (q *Queue[T]) rebase(newWidth int) {
	oldWidth := len(q.buf)
	if newWidth == oldWidth {
		return
	}

	length := q.Len()
	oldHead := q.head
	var rotation int
	if oldWidth > 0 {
		rotation = int(oldHead & q.mask())
	}

	// no wraparound
	if rotation+length <= oldWidth {
		if rotation != 0 {
			copy(q.buf[:length], q.buf[rotation:rotation+length])
			clear(q.buf[length : rotation+length])
		}
		q.buf = resize(q.buf, newWidth)
		q.head = 0
		q.tail = uint32(length)
		return
	}

	oldMask := uint32(oldWidth) - 1

	// >= 2x growth
	if newWidth >= oldWidth*2 {
		q.buf = resize(q.buf, newWidth)
		oldSide := q.buf[:oldWidth]
		newSide := q.buf[oldWidth:]
		for i := range length {
			j := (oldHead + uint32(i)) & oldMask
			newSide[i] = oldSide[j]
		}
		clear(oldSide)

		// head is now at the midpoint of the resized buffer
		q.head = uint32(oldWidth)
		q.tail = uint32(oldWidth + length)
		return
	}

	// < 2x growth, or a shrink of a wrapped window
	newBuf := make([]T, newWidth)
	for i := range length {
		j := (oldHead + uint32(i)) & oldMask
		newBuf[i] = q.buf[j]
	}
	q.buf = newBuf
	q.head = 0
	q.tail = uint32(length)
}

// resize returns a slice of length n holding buf's first min(n, len(buf)) elements.
// Growth reuses spare capacity; a shrink always reallocates so memory is released.
func resize[T any](buf []T, n int) []T {
	if n == 0 {
		return nil
	}
	if n >= len(buf) && n <= cap(buf) {
		return buf[:n]
	}
	newBuf := make([]T, n)
	copy(newBuf, buf)
	return newBuf
}

// Push appends v at the tail.
func (q *Queue[T]) Push(v T) {
	q.Reserve(q.Len() + 1)
	q.buf[q.tail&q.mask()] = v
	q.tail++
}

// PushSorted appends v and moves it toward the head while its left neighbor compares
// greater, stopping at the first in-order pair. It returns v's final logical index.
// The queue stays sorted only if it was sorted before the call.
func (q *Queue[T]) PushSorted(v T, cmp func(a, b T) int) int {
	back := q.Len()
	q.Push(v)

	buf := q.buf
	mask := q.mask()
	head := q.head

	pos := back
	for i := back; i > 0; i-- {
		rhs := (head + uint32(i)) & mask
		lhs := (head + uint32(i) - 1) & mask
		if cmp(buf[lhs], buf[rhs]) <= 0 {
			break
		}
		buf[lhs], buf[rhs] = buf[rhs], buf[lhs]
		pos--
	}
	return pos
}

// Pop removes and returns the head element. Popping an empty queue is a caller bug
// and panics with ErrEmpty.
func (q *Queue[T]) Pop() T {
	if q.IsEmpty() {
		panic(violation(ErrEmpty, "ringq: pop"))
	}
	i := q.head & q.mask()
	v := q.buf[i]
	var zero T
	q.buf[i] = zero
	q.head++
	return v
}

// TryPop is Pop for callers that treat an empty queue as a normal outcome.
func (q *Queue[T]) TryPop() (T, bool) {
	if q.IsEmpty() {
		var zero T
		return zero, false
	}
	return q.Pop(), true
}

// Front returns the head element without removing it.
func (q *Queue[T]) Front() T {
	if q.IsEmpty() {
		panic(violation(ErrEmpty, "ringq: front"))
	}
	return q.buf[q.head&q.mask()]
}

// Back returns the tail element without removing it.
func (q *Queue[T]) Back() T {
	if q.IsEmpty() {
		panic(violation(ErrEmpty, "ringq: back"))
	}
	return q.buf[(q.tail-1)&q.mask()]
}

// At returns the element at logical position i (0 is the head).
func (q *Queue[T]) At(i int) T {
	q.checkIndex(i)
	return q.buf[q.index(i)]
}

// Set replaces the element at logical position i.
func (q *Queue[T]) Set(i int, v T) {
	q.checkIndex(i)
	q.buf[q.index(i)] = v
}

func (q *Queue[T]) checkIndex(i int) {
	if i < 0 || i >= q.Len() {
		panic(violation(ErrIndex, "ringq: index %d with length %d", i, q.Len()))
	}
}
