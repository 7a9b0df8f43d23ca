package types

import "errors"

// Store is the untyped, string-keyed boundary every backend implements.
// Values crossing it are native values (see Kind); backends normalize
// whatever they are given with Normalize before persisting it.
type Store interface {
	// Get returns the native value stored under key. The boolean is false
	// when no slot exists for key.
	Get(key string) (any, bool, error)

	// Set stores value under key. A nil value removes the slot.
	// Returns ErrUnsupportedValue if value is not a native value.
	Set(key string, value any) error

	// Remove deletes the slot for key. Removing a missing key succeeds.
	Remove(key string) error

	// Keys returns the names of every slot currently in the store, sorted.
	Keys() ([]string, error)
}

// Store operation errors.
var (
	ErrNilStore         = errors.New("store must not be nil")
	ErrInvalidKey       = errors.New("key must not be empty")
	ErrUnsupportedValue = errors.New("value is not a native store value")
)
