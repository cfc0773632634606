package models

import (
	"errors"
	"fmt"
)

// ErrMalformedDescriptor is returned by the descriptor Validate methods when
// a required identifier is missing.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

func malformed(kind, field string) error {
	return fmt.Errorf("%w: %s has no %s", ErrMalformedDescriptor, kind, field)
}

// ListUnavailableError reports that the top-level list call for a category
// failed. Err is the underlying provider error.
type ListUnavailableError struct {
	Category Category
	Err      error
}

func (e *ListUnavailableError) Error() string {
	return fmt.Sprintf("%s resource list unavailable: %v", e.Category, e.Err)
}

func (e *ListUnavailableError) Unwrap() error { return e.Err }
