package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates that the requested task does not exist in the store.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrStorageFailed is returned for any backing-store failure that is not
	// a "not found" condition: connection loss, constraint violations,
	// failed commits. The request boundary maps it to 503.
	ErrStorageFailed = errors.New("storage operation failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or to commit.
	ErrTransactionFailed = fmt.Errorf("%w: transaction", ErrStorageFailed)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorageError checks if the error originated from a backing-store
// failure rather than a missing entity.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageFailed)
}

// StoreError attaches entity and operation context to a storage failure.
// Store implementations wrap mapped driver errors in it so logs and error
// chains say which operation failed; sentinel matching still works through
// Unwrap.
type StoreError struct {
	Entity    string // The entity type (e.g., "task")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
