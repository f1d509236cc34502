package source

import (
	"errors"
	"fmt"
)

// ErrUnsupportedInput indicates a file whose type has no token extractor
var ErrUnsupportedInput = errors.New("unsupported input")

// UnsupportedInputError names the input that could not be read as tokens
type UnsupportedInputError struct {
	Path string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input %s: expected .css, .html, .json or .yaml", e.Path)
}

func (e *UnsupportedInputError) Unwrap() error {
	return ErrUnsupportedInput
}

// NewUnsupportedInputError creates a new unsupported input error
func NewUnsupportedInputError(path string) error {
	return &UnsupportedInputError{Path: path}
}
