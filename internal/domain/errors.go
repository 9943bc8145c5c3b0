package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference indicates a record points at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidInput indicates the backend rejected a value as malformed.
	ErrInvalidInput = errors.New("invalid input")
)
