package entity

import "errors"

var (
	// ErrNoteNotFound is returned by the stores when an operation names an id
	// that is not persisted.
	ErrNoteNotFound = errors.New("note not found")

	// ErrPersistence wraps failures of the durable medium.
	ErrPersistence = errors.New("note persistence failed")
)
