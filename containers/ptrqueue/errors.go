package ptrqueue

import "github.com/cockroachdb/errors"

var (
	// ErrCapacity indicates a zero capacity or one above 1<<30.
	ErrCapacity = errors.New("ptrqueue: capacity must be in [1, 1<<30]")

	// ErrNilValue indicates a push of nil, which is reserved as the empty marker.
	ErrNilValue = errors.New("ptrqueue: nil value pushed")

	// ErrDestroyed indicates an operation on a queue after Destroy.
	ErrDestroyed = errors.New("ptrqueue: queue destroyed")
)

// precondition marks err as a caller bug, distinct from a full or empty queue.
func precondition(err error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Wrapf(err, format, args...))
}
