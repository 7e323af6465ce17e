package ringq

import "iter"

// All returns a sequence of (logical index, element) pairs from head to tail.
// Each range over the sequence starts from the queue's state at that moment.
func (q *Queue[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		buf, head, mask, n := q.buf, q.head, q.mask(), q.Len()
		for i := range n {
			if !yield(i, buf[(head+uint32(i))&mask]) {
				return
			}
		}
	}
}

// Values returns a sequence of the elements from head to tail.
func (q *Queue[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range q.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Find returns the logical index of the first element matching pred, or -1.
func (q *Queue[T]) Find(pred func(T) bool) int {
	for i, v := range q.All() {
		if pred(v) {
			return i
		}
	}
	return -1
}

// Index returns the logical index of the first element equal to v, or -1.
func Index[T comparable](q *Queue[T], v T) int {
	return q.Find(func(x T) bool { return x == v })
}

// RemoveAt deletes the element at logical position i, shifting later elements
// one place toward the head. O(Len()-i).
func (q *Queue[T]) RemoveAt(i int) {
	q.checkIndex(i)
	back := q.Len() - 1
	for ; i < back; i++ {
		q.buf[q.index(i)] = q.buf[q.index(i+1)]
	}
	var zero T
	q.buf[q.index(back)] = zero
	q.tail--
}
