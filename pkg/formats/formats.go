// Package formats provides parsers for the model and image files the viewer loads.
package formats

import (
	"errors"
	"fmt"
)

// Shared format errors.
var (
	// ErrFormat is wrapped by every malformed-input error in this package.
	ErrFormat = errors.New("malformed data")
	// ErrIndexOutOfRange is returned when a face references a missing vertex.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ParseError records the line a text parse failed on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
