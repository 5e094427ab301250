// Package usecase implements account sign-up, login and profile lookups.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when the email is already registered under any role.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials covers unknown emails, wrong passwords and role mismatches.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingField is wrapped with the name of the absent field.
	ErrMissingField = errors.New("missing required field")

	// ErrWeakPassword is returned when the password is too short.
	ErrWeakPassword = errors.New("password too weak")

	// ErrInvalidRole is returned for roles outside the closed set.
	ErrInvalidRole = errors.New("invalid role")
)
