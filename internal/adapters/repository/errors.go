package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrRosterNotFound = errors.New("roster file not found")
	ErrRosterEncoding = errors.New("roster file is not valid UTF-8")
	ErrReadRoster     = errors.New("read roster failed")
	ErrReadHistory    = errors.New("read history failed")
	ErrWriteHistory   = errors.New("write history failed")
	ErrWriteSchedule  = errors.New("write schedule failed")
	ErrIncomplete     = errors.New("week schedule is incomplete")
)
