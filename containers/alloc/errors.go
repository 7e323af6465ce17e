package alloc

import "github.com/cockroachdb/errors"

var (
	// ErrNoSpace indicates that no free range large enough was found.
	ErrNoSpace = errors.New("alloc: no free range large enough")

	// ErrBadItem indicates a Free of a range outside [0, capacity) or with a non-positive size.
	ErrBadItem = errors.New("alloc: bad heap item")

	// ErrOverlap indicates a Free of a range that is already (partly) free.
	ErrOverlap = errors.New("alloc: item overlaps a free range")

	// ErrBadSize indicates a non-positive allocation size or capacity.
	ErrBadSize = errors.New("alloc: size must be positive")
)

// precondition marks err as a caller bug, distinct from capacity exhaustion.
// The sentinel stays reachable through errors.Is.
func precondition(err error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Wrapf(err, format, args...))
}
