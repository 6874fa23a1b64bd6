package fluid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every InputError so callers can test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a parameter outside the domain in which a formula is defined
type InputError struct {
	Field string
	Value float64
	Rule  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %g (%s)", e.Field, e.Value, e.Rule)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Positive rejects values that are zero, negative or not finite
func Positive(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return &InputError{Field: field, Value: v, Rule: "must be > 0"}
	}
	return nil
}

// NonNegative rejects negative or non-finite values
func NonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return &InputError{Field: field, Value: v, Rule: "must be >= 0"}
	}
	return nil
}

// Finite rejects NaN and ±Inf
func Finite(field string, v float64) error {
	if !finite(v) {
		return &InputError{Field: field, Value: v, Rule: "must be finite"}
	}
	return nil
}

// InRange rejects values outside the closed interval [lo, hi]
func InRange(field string, v, lo, hi float64) error {
	if !finite(v) || v < lo || v > hi {
		return &InputError{Field: field, Value: v, Rule: fmt.Sprintf("must be within [%g, %g]", lo, hi)}
	}
	return nil
}

// Efficiency rejects efficiencies outside (0, 1]
func Efficiency(field string, v float64) error {
	if !finite(v) || v <= 0 || v > 1 {
		return &InputError{Field: field, Value: v, Rule: "must be within (0, 1]"}
	}
	return nil
}

// FirstError returns the first non-nil error, letting validators read as a list.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
