package validator

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions indicates validator options that cannot drive a run
var ErrInvalidOptions = errors.New("invalid validator options")

// OptionsError describes which option was rejected and why
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

func (e *OptionsError) Unwrap() error {
	return ErrInvalidOptions
}

func newOptionsError(field, reason string) error {
	return &OptionsError{Field: field, Reason: reason}
}
