package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is wrapped by every InvalidSizeError.
	ErrInvalidSize = errors.New("invalid lattice size")

	// ErrInvalidTemperature is returned for negative, NaN or infinite temperatures.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidSchedule is returned when a driver is given a non-positive cooling
	// time or a negative number of flips per site.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidSpin is returned when an explicit grid holds a value other than -1 or +1.
	ErrInvalidSpin = errors.New("invalid spin value")
)

// InvalidSizeError reports a lattice constructed with size <= 0 or a non-square grid.
type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("lattice size must be positive, got %d", e.Size)
}

func (e *InvalidSizeError) Unwrap() error {
	return ErrInvalidSize
}
