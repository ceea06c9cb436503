package generator

import (
	"errors"
	"fmt"
)

// ErrInvalidRange matches every *InvalidRangeError via errors.Is.
var ErrInvalidRange = errors.New("invalid generator range")

// InvalidRangeError reports degenerate or inverted generator input.
// The caller should ask for corrected input before generating again.
type InvalidRangeError struct {
	Field  string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid generator input %s: %s", e.Field, e.Reason)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }
