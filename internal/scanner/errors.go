package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenParse is matched by every *ParseError.
	ErrTokenParse = errors.New("token parse error")

	// ErrOverflow is returned when a product or the running sum does not fit in uint64.
	ErrOverflow = errors.New("sum overflows uint64")
)

// ParseError reports a mul token whose operands cannot be represented as uint64.
type ParseError struct {
	Pos int
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q at pos %d: %v", e.Raw, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrTokenParse
}
