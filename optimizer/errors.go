package optimizer

import "errors"

// Sentinel errors for optimizer operations.
var (
	ErrNilHost            = errors.New("optimizer: clock host is nil")
	ErrNilFunc            = errors.New("optimizer: operation function is nil")
	ErrEmptyName          = errors.New("optimizer: operation name is empty")
	ErrDuplicateOperation = errors.New("optimizer: operation already registered")
	ErrFastPathDisabled   = errors.New("optimizer: fast component lookup is disabled")
)
