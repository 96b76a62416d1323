package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrIntegrity is returned when a query expected to match at most one
	// row matches several. Callers get an error, never an arbitrary row.
	ErrIntegrity = errors.New("multiple rows matched a single-row query")

	// ErrUnknownColumn is returned when a filter or value references a
	// column the entity does not declare.
	ErrUnknownColumn = errors.New("unknown column")
)

// QueryError represents a query execution error.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
