package ringq

import "github.com/cockroachdb/errors"

var (
	// ErrEmpty indicates Pop, Front or Back on an empty queue.
	ErrEmpty = errors.New("ringq: queue is empty")

	// ErrIndex indicates a logical index outside [0, Len()).
	ErrIndex = errors.New("ringq: index out of range")

	// ErrSize indicates a negative size, a size too large for the cursor space, or a
	// FitTo target smaller than the current length.
	ErrSize = errors.New("ringq: invalid size")
)

// violation builds the panic value for a caller bug. It carries an assertion
// failure marker so recover() sites can tell it apart from runtime errors.
func violation(err error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Wrapf(err, format, args...))
}
