package storage

import "errors"

// Common client storage errors
var (
	// ErrKeyNotFound indicates that the requested key is not stored
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownKey indicates a key outside of the fixed credential key set
	ErrUnknownKey = errors.New("unknown credential key")

	// ErrSessionNotFound indicates that no credentials are stored (logged out)
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
