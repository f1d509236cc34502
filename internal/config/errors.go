package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration file that failed to load or validate
var ErrInvalidConfig = errors.New("invalid configuration")

// InvalidConfigError describes why a configuration was rejected
type InvalidConfigError struct {
	Path   string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration in %s: %s", e.Path, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewInvalidConfigError creates a new invalid configuration error
func NewInvalidConfigError(path, reason string) error {
	return &InvalidConfigError{Path: path, Reason: reason}
}
