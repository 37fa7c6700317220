package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the remote store can't be reached
	// (network failure, auth rejection, or a server-side error on a read)
	ErrUnavailable = errors.New("store unavailable")

	// ErrWriteRejected is returned when the store refuses an insert, update,
	// or delete (constraint violation or malformed record)
	ErrWriteRejected = errors.New("store write rejected")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
