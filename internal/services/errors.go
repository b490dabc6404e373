package services

import "errors"

// Sentinel errors surfaced to handlers, which translate them into flash
// messages and redirects.
var (
	// ErrDuplicateUser means the username is already registered.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound means no document matched the given ID.
	ErrNotFound = errors.New("not found")
)
