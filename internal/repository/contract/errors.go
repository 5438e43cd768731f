package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the backend has no entry for the requested key.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable means the backend could not be reached or failed an I/O operation.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Unavailable wraps a backend failure so callers can match it with errors.Is(err, ErrStorageUnavailable).
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}
