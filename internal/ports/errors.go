package ports

import (
	"errors"
	"fmt"
)

// Common store errors that can occur during external data access.
var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates that the backing store could not
	// be reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrConflict indicates that a write violated a uniqueness
	// constraint.
	ErrConflict = errors.New("constraint conflict")
)

// StoreError represents a failure while loading or writing a named
// entity through a store port. It provides context about which entity
// and operation failed.
type StoreError struct {
	// Entity names what was being accessed, e.g. "active domains".
	Entity string

	// Operation describes what was being performed, e.g. "load".
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is/As.
func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError creates a new StoreError with the given details.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}

// PersistenceError represents a failed write-back of computed
// evaluation fields. It is logged, never propagated: the read path
// must not fail because the write-back path failed.
type PersistenceError struct {
	// EvaluationID is the evaluation whose computed fields could not
	// be saved.
	EvaluationID string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for PersistenceError.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist computed fields for evaluation %s: %v", e.EvaluationID, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(evaluationID string, err error) *PersistenceError {
	return &PersistenceError{EvaluationID: evaluationID, Err: err}
}
