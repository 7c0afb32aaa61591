package db

import "errors"

var (
	// ErrMissing is returned when the requested record is not found.
	ErrMissing = errors.New("missing")

	// ErrConflict is returned when a record with the same key already exists.
	ErrConflict = errors.New("conflict")

	// ErrProjectNotEmpty is returned when a project to be deleted still has objects.
	ErrProjectNotEmpty = errors.New("project is not empty")
)
