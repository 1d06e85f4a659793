package intercept

import "errors"

var (
	// ErrNilHook indicates a nil hook was registered.
	ErrNilHook = errors.New("intercept: hook is nil")

	// ErrDuplicateHook indicates a hook name is already registered on the chain.
	ErrDuplicateHook = errors.New("intercept: duplicate hook name")

	// ErrEmptyHookName indicates a hook was registered without a name.
	ErrEmptyHookName = errors.New("intercept: hook name is required")
)
