package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced user or project does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate emails and invalid membership transitions.
	ErrConflict = errors.New("conflict")
	// ErrInvalid marks malformed list parameters and other caller mistakes.
	ErrInvalid = errors.New("invalid argument")
)
