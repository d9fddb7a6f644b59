// Package common defines shared constants and sentinel errors used across
// the vault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth-specific errors.
	ErrorDuplicateUsername  = errors.New("username already exists")
	ErrorUserNotFound       = errors.New("user not found")
	ErrorInvalidCredentials = errors.New("invalid username/password")

	// Entry-specific errors.
	ErrorDuplicateEntry = errors.New("entry already exists for this service")
	ErrorEntryNotFound  = errors.New("entry not found")
	ErrorForbidden      = errors.New("entry belongs to another user")

	// Session token errors (invalid, malformed, or expired token).
	ErrorInvalidToken = errors.New("invalid token")

	// Validation and persistence.
	ErrorValidation  = errors.New("validation error")
	ErrorPersistence = errors.New("snapshot write failed")
)
