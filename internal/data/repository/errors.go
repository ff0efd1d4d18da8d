package repository

import "errors"

var (
	// ErrNotFound is returned when the target user id does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when an email is already registered,
	// either by the pre-insert check or by the unique index on email.
	ErrDuplicateEmail = errors.New("email already registered")
)
