package state

import "errors"

// Sentinel errors for the state store.
var (
	// ErrNotFound is returned by a Backend when a key has never been saved.
	ErrNotFound = errors.New("state: key not found")

	// ErrCorrupt is returned under strict hydration when a stored value is not valid JSON
	// or the backend could not be read.
	ErrCorrupt = errors.New("state: stored value is unreadable")

	// ErrMarshal is returned when a value cannot be encoded as JSON.
	ErrMarshal = errors.New("state: failed to marshal value")

	// ErrTooLarge is returned by a Backend that cannot hold a value of this size.
	ErrTooLarge = errors.New("state: value too large for backend")

	// ErrUnknownSlot is returned by Store.Slot for names other than the two known keys.
	ErrUnknownSlot = errors.New("state: unknown slot")
)
