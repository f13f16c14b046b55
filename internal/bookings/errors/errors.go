package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrStatusChanged means the compare-and-set on status matched no
	// document: someone else transitioned the booking first.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
