package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrDataUnavailable = errors.New("dataset unavailable")
	ErrMissingColumn   = fmt.Errorf("%w: missing required column", ErrDataUnavailable)
	ErrNonNumeric      = fmt.Errorf("%w: non-numeric value in numeric column", ErrDataUnavailable)
	ErrEmptyDataset    = fmt.Errorf("%w: no data rows", ErrDataUnavailable)

	// Selection errors
	ErrUnknownCategory = errors.New("unknown category")
)

// Error constructors with context
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w %q", ErrMissingColumn, column)
}

func NewNonNumericError(column string, row int, value string) error {
	return fmt.Errorf("%w: column %q row %d value %q", ErrNonNumeric, column, row, value)
}

// Error checking helpers
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

func IsUnknownCategory(err error) bool {
	return errors.Is(err, ErrUnknownCategory)
}
