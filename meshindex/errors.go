package meshindex

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("index out of range")
	// ErrCountMismatch is reported by document readers when a declared
	// element count disagrees with the data.
	ErrCountMismatch = errors.New("count mismatch")
)

// RangeError reports a raw attribute index outside its source array.
type RangeError struct {
	Attribute string
	Corner    int
	Index     uint32
	Len       int
}

func (e *RangeError) Error() string {
	name := e.Attribute
	if name == "" {
		name = "attribute"
	}
	return fmt.Sprintf("%s: corner %d refers to index %d, source has %d elements", name, e.Corner, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
