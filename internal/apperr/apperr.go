// Package apperr defines error kinds that domain errors wrap so transports can
// classify them without knowing every sentinel.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalid      = errors.New("invalid argument")
	ErrPrecondition = errors.New("failed precondition")
	ErrUnavailable  = errors.New("temporarily unavailable")
)
