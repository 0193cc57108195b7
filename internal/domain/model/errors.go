package model

import "errors"

// Sentinel error kinds shared across the domain.
var (
	// ErrConfiguration marks input that makes generation impossible.
	ErrConfiguration = errors.New("configuration error")
)
