package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownSetting indicates the key is not registered.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value fails registry validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNoFile indicates Save was called on a store without a settings file.
	ErrNoFile = errors.New("no settings file configured")
)

// TypeError represents a type mismatch when reading a setting.
type TypeError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Key, e.Expected, e.Actual)
}

func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// ValidationError wraps a registry validation failure.
type ValidationError struct {
	Key   string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %v for %s: %v", e.Value, e.Key, e.Err)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
