package config

import "errors"

// Sentinel errors returned by Load and Validate.
var (
	// ErrInvalidConfig marks a setting that was read but cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrLoadConfig marks a config file or environment that could not be read.
	ErrLoadConfig = errors.New("cannot load configuration")
)
