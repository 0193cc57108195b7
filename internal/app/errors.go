package service

import "errors"

// Sentinel errors returned by the service.
var (
	// ErrNotStarted is returned when an operation needs the roster but Start
	// has not completed.
	ErrNotStarted = errors.New("service not started")
)
