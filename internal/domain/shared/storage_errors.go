package shared

import "fmt"

// Storage errors are returned by repository implementations. They describe
// what went wrong in storage-agnostic terms so services never inspect
// driver-specific error codes.

// NotFoundError is returned when a row addressed by key does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) match storage not-found errors.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UniqueConstraintError is returned when a write violates a unique index.
type UniqueConstraintError struct {
	Constraint string
	Err        error
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *UniqueConstraintError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrAlreadyExists) match unique violations.
func (e *UniqueConstraintError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ForeignKeyConstraintError is returned when a write references a missing
// row, or a delete would orphan a referencing row.
type ForeignKeyConstraintError struct {
	Constraint string
	Err        error
}

func (e *ForeignKeyConstraintError) Error() string {
	return fmt.Sprintf("foreign key constraint %q violated", e.Constraint)
}

func (e *ForeignKeyConstraintError) Unwrap() error { return e.Err }

// NewNotFound builds a NotFoundError for the given entity and key.
func NewNotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}
