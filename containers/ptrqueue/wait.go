package ptrqueue

import (
	"context"
	"runtime"
	"time"
)

const (
	// spinLimit is the number of immediate retries before yielding the processor.
	spinLimit = 64

	// yieldLimit is the number of Gosched retries before falling back to short sleeps.
	yieldLimit = 1024

	// sleepInterval bounds the latency added once a wait has gone on for a while.
	sleepInterval = 50 * time.Microsecond
)

// backoff waits a little longer the more attempts have failed.
func backoff(attempt int) {
	switch {
	case attempt < spinLimit:
	case attempt < yieldLimit:
		runtime.Gosched()
	default:
		time.Sleep(sleepInterval)
	}
}

// Push retries TryPush until it succeeds or ctx is done. It returns ctx.Err() on
// cancellation and ErrDestroyed if the queue has no slots.
func (q *Queue[T]) Push(ctx context.Context, v *T) error {
	for attempt := 0; ; attempt++ {
		if q.TryPush(v) {
			return nil
		}
		if q.Capacity() == 0 {
			return ErrDestroyed
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		backoff(attempt)
	}
}

// Pop retries TryPop until it returns a value or ctx is done. It returns ctx.Err() on
// cancellation and ErrDestroyed if the queue has no slots.
func (q *Queue[T]) Pop(ctx context.Context) (*T, error) {
	for attempt := 0; ; attempt++ {
		if v := q.TryPop(); v != nil {
			return v, nil
		}
		if q.Capacity() == 0 {
			return nil, ErrDestroyed
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		backoff(attempt)
	}
}
