package errors

import "errors"

var (
	ErrNotFound = errors.New("note not found")

	// ErrDuplicate means a note already exists for the owner.
	ErrDuplicate = errors.New("note already exists")
)
