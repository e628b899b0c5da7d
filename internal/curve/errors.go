package curve

import (
	"fmt"
	"strings"

	"rateCurves/internal/ports"
)

// InvalidRangeError reports a utilization window the engine cannot sample.
type InvalidRangeError struct {
	Lower  float64
	Upper  float64
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%g, %g]: %s", e.Lower, e.Upper, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ports.ErrInvalidRange).
func (e *InvalidRangeError) Unwrap() error {
	return ports.ErrInvalidRange
}

// ValidationError lists every problem found in a curve definition.
type ValidationError struct {
	Curve  string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("curve %q: %s", e.Curve, strings.Join(e.Issues, "; "))
}

// Unwrap lets callers match with errors.Is(err, ports.ErrInvalidCurve).
func (e *ValidationError) Unwrap() error {
	return ports.ErrInvalidCurve
}
