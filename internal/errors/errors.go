package appErrors

import (
	"errors"
	"fmt"
)

// ErrNotFound is a sentinel error for a missing entity, or one that is
// in the wrong state for the requested operation.
type ErrNotFound struct {
	Resource string
	ID       int
}

func (e *ErrNotFound) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// Helper constructor
func NewNotFound(resource string, id int) error {
	return &ErrNotFound{Resource: resource, ID: id}
}

// ErrValidation signals malformed or rejected input.
type ErrValidation struct {
	Msg string
}

func (e *ErrValidation) Error() string {
	return e.Msg
}

func NewValidation(msg string) error {
	return &ErrValidation{Msg: msg}
}

// ErrUnauthorized covers bad credentials, disabled accounts and
// identity mismatches on self-service endpoints.
type ErrUnauthorized struct {
	Msg string
}

func (e *ErrUnauthorized) Error() string {
	return e.Msg
}

func NewUnauthorized(msg string) error {
	return &ErrUnauthorized{Msg: msg}
}

func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var v *ErrValidation
	return errors.As(err, &v)
}

func IsUnauthorized(err error) bool {
	var u *ErrUnauthorized
	return errors.As(err, &u)
}
