package storage

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrReferenced is returned when a row is still referenced by a foreign key.
	ErrReferenced = errors.New("referenced by other rows")
	// ErrUnknownReference is returned when a write names a dictionary row that does not exist.
	ErrUnknownReference = errors.New("unknown reference")
)
