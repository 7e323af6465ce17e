// Package ptrqueue provides a lock-free, bounded, multi-producer/multi-consumer queue
// of pointers.
//
// # Overview
//
// Queue hands opaque work items between goroutines without a lock. Each slot of a
// power-of-two ring holds either nil (empty) or a non-nil *T (occupied). Producers claim
// an empty slot with a compare-and-swap from nil to their value; consumers release an
// occupied slot with a compare-and-swap from the observed value back to nil. Two
// monotonically increasing cursors count successful pushes and pops, so
// write-read is the number of occupied slots.
//
//	q, err := ptrqueue.New[Job](64)
//	if err != nil {
//	    return err
//	}
//
//	// producer
//	for !q.TryPush(job) {
//	    runtime.Gosched()
//	}
//
//	// consumer
//	if job := q.TryPop(); job != nil {
//	    job.Run()
//	}
//
// # Progress and Retries
//
// The queue is lock-free, not wait-free. TryPush and TryPop never block and never
// allocate, but under contention they can return false/nil even though the queue is
// logically non-full/non-empty. Callers retry with their own policy; Push and Pop wrap
// the non-blocking calls in a spin-then-yield loop bounded by a context.
//
// # Ordering
//
// A successful push happens-before the pop that clears the same slot, and that pop
// happens-before the next push into the slot. Ownership of whatever the pointer
// references moves with it, so no extra lock is needed around the payload.
// Delivery order is approximately FIFO: consumers scan from the read cursor, but
// concurrent producers may fill slots out of cursor order.
//
// # Lifecycle
//
// New and Destroy must not race with each other or with any push/pop. Between them,
// any number of goroutines may call TryPush/TryPop concurrently.
package ptrqueue
