package production

import "errors"

var (
	// ErrInvalidDate is returned when a date is not a zero-padded ISO calendar date.
	ErrInvalidDate = errors.New("production: invalid date")
	// ErrEmptyDimension is returned when a record is missing plant, machine, shift or process.
	ErrEmptyDimension = errors.New("production: empty dimension")
	// ErrOEEOutOfRange is returned when OEE is outside [0,100].
	ErrOEEOutOfRange = errors.New("production: oee out of range")
	// ErrNegativeValue is returned when a measured value is negative.
	ErrNegativeValue = errors.New("production: negative value")
)
