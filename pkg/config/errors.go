package config

import (
	"errors"
	"fmt"
)

// Item validation errors. Handlers wrap these in *ValidationError.
var (
	ErrOutOfRange   = errors.New("value out of range")
	ErrLength       = errors.New("length out of range")
	ErrUnknownName  = errors.New("unknown enumeration name")
	ErrUnknownValue = errors.New("value has no enumeration name")
	ErrFormat       = errors.New("malformed value")
)

// ValidationError reports an item that failed its declared bound.
type ValidationError struct {
	// Path is the slash path of the item, e.g. "/axes/x/steps_per_mm".
	Path string

	// Value is the offending value as text.
	Value string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Path, e.Value, e.Err)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CheckInt32 returns ErrOutOfRange unless min <= v <= max.
func CheckInt32(v, min, max int32) error {
	if v < min || v > max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, min, max)
	}
	return nil
}

// CheckFloat returns ErrOutOfRange unless min <= v <= max.
func CheckFloat(v, min, max float32) error {
	if v < min || v > max || v != v {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, v, min, max)
	}
	return nil
}

// CheckLength returns ErrLength unless minLength <= len(s) <= maxLength.
func CheckLength(s string, minLength, maxLength int) error {
	if n := len(s); n < minLength || n > maxLength {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLength, n, minLength, maxLength)
	}
	return nil
}
