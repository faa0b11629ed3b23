package services

import "errors"

var (
	// ErrDuplicateIdentifier is returned when a username or email is already taken.
	ErrDuplicateIdentifier = errors.New("username or email already in use")
	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrInvalidToken covers every token verification failure.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidCredentials is returned when an identifier and password do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAlreadyExists is returned when a non-user resource violates a uniqueness rule.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for semantically invalid requests.
	ErrInvalidInput = errors.New("invalid input")
)
