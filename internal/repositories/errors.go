package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no record exists for the requested identifier
	ErrNotFound = errors.New("point record not found")
	// ErrStoreUnavailable reports that the backing store could not be reached in time
	ErrStoreUnavailable = errors.New("point store unavailable")
	// ErrSerialization reports stored bytes that do not decode into a PointRecord
	ErrSerialization = errors.New("point record serialization failed")
	// ErrEmptyID rejects records and lookups without an identifier
	ErrEmptyID = errors.New("point record id is required")
)

// Unavailable wraps a backend failure so that callers can match ErrStoreUnavailable
// while the driver error stays reachable through errors.Is/As.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
