package repository

import "errors"

var (
	// ErrNotFound is returned when no archived document matches.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an ID prefix matches several documents.
	ErrAmbiguousID = errors.New("ambiguous document id prefix")
	// ErrAlreadyArchived is returned when a document ID is reused.
	ErrAlreadyArchived = errors.New("document already archived")
)
