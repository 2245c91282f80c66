package candidates

import "errors"

var (
	// ErrNotFound indicates the requested candidate does not exist.
	ErrNotFound = errors.New("candidate not found")
	// ErrMissingName rejects a record without the required natural key.
	// No writes happen when it is returned.
	ErrMissingName = errors.New("name is required to create or update a candidate")
)
