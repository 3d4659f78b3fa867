// Package errors provides the typed errors shared by the sutra tools.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a file or document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed input.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string // "file", "sutra", "chapter"
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Format string
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is lets errors.Is(err, ErrInvalidInput) match any parse failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError reports a failed read or write.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewNotFound returns a NotFoundError for resource id.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is or wraps a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
