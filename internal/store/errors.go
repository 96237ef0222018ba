package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// KVStore.Get reports a missing key through its found result instead.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidKey is returned when a key is empty.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidValue is returned when the backend rejects a value, for example
	// because of a constraint violation.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnavailable is returned when the backing storage cannot be reached
	// or is temporarily locked.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrNotInitialized is returned when the backing schema or location has
	// not been set up.
	ErrNotInitialized = errors.New("storage not initialized")

	// ErrClosed is returned by operations on a store that has been closed.
	ErrClosed = errors.New("store closed")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailableError reports whether err means the storage could not be
// reached, as opposed to a bad request.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrClosed)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Backend   string // The backend name (e.g., "file", "redis")
	Operation string // The operation that failed (e.g., "get", "set")
	Key       string // The key involved, if any
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	target := e.Backend
	if e.Key != "" {
		target = fmt.Sprintf("%s key %q", e.Backend, e.Key)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, target, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, target, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given backend, operation, key, message, and wrapped error.
func NewStoreError(backend, operation, key, message string, err error) *StoreError {
	return &StoreError{
		Backend:   backend,
		Operation: operation,
		Key:       key,
		Message:   message,
		Err:       err,
	}
}
