package launch

import (
	"fmt"
	"math"
)

// ValidationError reports a launch parameter that is out of range
type ValidationError struct {
	// Field is the name of the offending field, e.g. workerMemoryMB
	Field string

	// Value is the actual value that failed validation
	Value int

	// Max is the inclusive ceiling the value was checked against
	Max int
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Max == math.MaxInt {
		return fmt.Sprintf("%s (%d) must be > 0", e.Field, e.Value)
	}
	return fmt.Sprintf("%s (%d) must be between 0 and %d", e.Field, e.Value, e.Max)
}

// ParseError reports an option whose value is not a valid integer
type ParseError struct {
	Option string
	Value  string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value %q for --%s: %v", e.Value, e.Option, e.Err)
}

// Unwrap returns the underlying conversion error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DurationError reports a malformed human-readable duration
type DurationError struct {
	Input  string
	Reason string
}

// Error implements the error interface
func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid duration %q: %s", e.Input, e.Reason)
}
