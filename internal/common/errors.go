package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrInvalidToken is returned for a bearer token that fails to parse,
	// is expired, or carries a malformed subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrRootImmutable is returned when a change targets a root account.
	ErrRootImmutable = errors.New("root users cannot be modified")

	// ErrNoHomeSelected is returned by actions that need a selected home.
	ErrNoHomeSelected = errors.New("no home selected")
)
