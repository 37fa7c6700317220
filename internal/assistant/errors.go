package assistant

import "errors"

var (
	// ErrEmptyMessage indicates a blank user message; nothing is sent.
	ErrEmptyMessage = errors.New("empty message")
	// ErrBusy indicates a completion call is already in flight; at most one
	// request runs at a time and new sends are ignored until it settles.
	ErrBusy = errors.New("assistant request already in flight")
)
