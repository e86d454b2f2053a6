package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange reports an offset past the text or inside a cluster.
	ErrOutOfRange = errors.New("buffer: offset out of range")
	// ErrLimitExceeded reports an edit that would grow the text past
	// Options.MaxChars.
	ErrLimitExceeded = errors.New("buffer: character limit exceeded")
)

// outOfRange builds an ErrOutOfRange error. Builds tagged inputkit_debug
// panic instead so bad offsets surface at the call site.
func outOfRange(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, args...))
	if debugAssertions {
		panic(err)
	}
	return err
}
