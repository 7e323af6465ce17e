package staging

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/corekit/containers/alloc"
)

var (
	// ErrNoSpace indicates the buffer has no free range large enough. It wraps
	// alloc.ErrNoSpace, so errors.Is matches either sentinel.
	ErrNoSpace = errors.Wrap(alloc.ErrNoSpace, "staging: buffer full")

	// ErrBadRange indicates a write or dirty mark outside its span or the buffer.
	ErrBadRange = errors.New("staging: range out of bounds")

	// ErrBadOptions indicates an invalid Options value.
	ErrBadOptions = errors.New("staging: invalid options")
)

// precondition marks err as a caller bug.
func precondition(err error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Wrapf(err, format, args...))
}
