package domain

import "errors"

// Sentinel errors shared by repositories, services and controllers.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidTimezone = errors.New("invalid timezone identifier")
	ErrNoDates         = errors.New("event has no date ranges")
)
