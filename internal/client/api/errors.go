package api

import "errors"

var (
	// ErrInvalidCredentials is returned by ObtainToken when the server
	// rejects the username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when the server rejects the current token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authenticated user lacks the
	// permission for an operation (e.g. non-staff hitting admin endpoints).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for unknown posts, slugs and similar lookups.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable covers network failures and server-side (5xx) errors.
	ErrUnavailable = errors.New("server unavailable")
)
