// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown,
	// expired or revoked. Callers get this one error regardless of which,
	// so responses do not reveal token state.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
