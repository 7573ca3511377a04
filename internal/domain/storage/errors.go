package storage

import "errors"

var (
	// ErrNotFound indicates that the requested entity does not exist.
	// Absence is a normal outcome, not a failure; callers branch with
	// errors.Is instead of a panic path.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates a uniqueness or foreign-key violation.
	ErrConflict = errors.New("constraint violation")

	// ErrUnavailable indicates the backend could not be reached: pool
	// exhausted, network failure, or Init never succeeded.
	ErrUnavailable = errors.New("storage backend unavailable")

	// ErrDecode indicates a row from the backend did not match the
	// expected shape. Decoding fails loudly rather than returning a
	// partially populated entity.
	ErrDecode = errors.New("row decode failed")
)
