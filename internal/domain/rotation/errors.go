package rotation

import "errors"

// Sentinel errors for this package.
var (
	ErrUnknownMode = errors.New("unknown rotation mode")
)
