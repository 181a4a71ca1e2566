// Package common defines shared constants and sentinel errors used across
// the persistence layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Pool errors. Acquisition failure is the one error class that is
	// allowed to propagate out of the service layer uncaught.
	ErrPoolAcquire = errors.New("connection pool acquire failed")

	// Statement-builder errors (identifier allow-list violations).
	ErrUnknownColumn = errors.New("unknown column")
	ErrUnknownTable  = errors.New("unknown table")
)
