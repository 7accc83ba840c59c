package staging

import "errors"

// Sentinel errors for staging operations.
var (
	ErrNotFound    = errors.New("staged file not found")
	ErrInvalidName = errors.New("invalid staged file name")
)
