package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound indicates the task is not in the project's sequence.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid project or task input.
	ErrInvalidInput = errors.New("invalid project input")
)
