package apperr

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	// ErrUnavailable is returned when the store did not answer within the operation timeout
	ErrUnavailable = errors.New("service unavailable")
)
