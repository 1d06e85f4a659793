package config

import "errors"

// Sentinel causes wrapped by the platform errors this package returns.
var (
	ErrMissingEnv       = errors.New("config: missing required environment variables")
	ErrUnknownPolicy    = errors.New("config: unknown policy")
	ErrNegativeInterval = errors.New("config: interval must not be negative")
	ErrInvalidAxis      = errors.New("config: invalid axis")
)
