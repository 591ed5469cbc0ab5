package domain

import (
	"errors"
	"fmt"
)

// ErrQuoteUnavailable indicates the quote source returned no usable price for
// a symbol, or the normalization rate could not be obtained. It is a
// per-symbol condition, always recoverable at the batch level.
var ErrQuoteUnavailable = errors.New("quote unavailable")

// ValidationError reports malformed input to a user-facing operation.
// It is surfaced synchronously and no partial write occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps an underlying storage failure. It is fatal to the
// specific operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
