package store

import (
	"errors"

	"gorm.io/gorm"
)

// Closed domain-error taxonomy. Callers match kinds with errors.Is and map
// each one to a status code themselves; the store never renders responses.
var (
	ErrInternal             = errors.New("internal server error")
	ErrIncorrectCredentials = errors.New("incorrect login credentials")
	ErrEmptyFields          = errors.New("some fields are empty")
	ErrPasswordsDiffer      = errors.New("passwords do not match")
	ErrWeakPassword         = errors.New("password is not strong enough")
	ErrDuplicateUser        = errors.New("user with this username already exists")
	ErrDuplicateItem        = errors.New("item with this locator already exists")
	ErrIllegalUsername      = errors.New("only alphanumerical characters and underscores are allowed in usernames")
	ErrIllegalLocator       = errors.New("only alphanumerical characters and underscores are allowed in item locators")
	ErrNotValidImage        = errors.New("uploaded file is not a valid image")
)

// internalError wraps an underlying store failure. It matches ErrInternal via
// errors.Is while keeping the cause reachable with errors.Unwrap for logging;
// the cause is never shown to end users.
type internalError struct {
	cause error
}

func (e *internalError) Error() string {
	return "internal server error: " + e.cause.Error()
}

func (e *internalError) Unwrap() error {
	return e.cause
}

func (e *internalError) Is(target error) bool {
	return target == ErrInternal
}

// internal wraps err as an opaque internal failure.
func internal(err error) error {
	return &internalError{cause: err}
}

// translateDuplicate maps a unique-constraint violation to the conflict error
// for the entity being mutated; any other failure is internal.
func translateDuplicate(err error, conflict error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return internal(err)
}
