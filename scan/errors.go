package scan

import "errors"

// Sentinel errors for scan operations.
var (
	ErrNilHierarchy   = errors.New("scan: universe has no type hierarchy")
	ErrAlreadyStarted = errors.New("scan: detector already started")
	ErrAbandoned      = errors.New("scan: detection abandoned")
	ErrInvalidMatcher = errors.New("scan: invalid matcher")
	ErrScanPanicked   = errors.New("scan: scan panicked")
)
