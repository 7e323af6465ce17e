// Package ringq provides a growable circular queue.
//
// # Overview
//
// Queue[T] keeps its elements in a power-of-two backing slice addressed by two
// monotonically increasing cursors, head and tail. The element at logical position i
// lives at (head+i) & (width-1), so push and pop never move data. When a push would
// overflow the buffer, the queue grows to max(2×width, 16, n) via a single rebase
// helper (FitTo) that relocates the circular window into the new buffer with as few
// copies as possible.
//
// The zero value is an empty queue ready to use:
//
//	var q ringq.Queue[int]
//	q.Push(1)
//	q.Push(2)
//	v := q.Pop() // 1
//
// PushSorted performs a single insertion step, keeping an already-sorted queue sorted:
//
//	q.PushSorted(5, cmp.Compare[int])
//	q.PushSorted(1, cmp.Compare[int])
//	q.PushSorted(3, cmp.Compare[int])
//	for v := range q.Values() {
//	    fmt.Println(v) // 1, 3, 5
//	}
//
// # Iteration
//
// All and Values return lazy, restartable sequences over the current contents in FIFO
// order. Mutating the queue while ranging over one of them is undefined.
//
// # Thread Safety
//
// Queue instances are not thread-safe. Callers must serialize access externally.
package ringq
