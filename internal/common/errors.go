// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match them.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHashing            = errors.New("password hashing failed")
	ErrExportDisabled     = errors.New("export storage is not configured")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Presence failures. All of them match ErrValidation.
var (
	ErrMissingFields = fmt.Errorf("%w: please fill all fields", ErrValidation)
	ErrMissingID     = fmt.Errorf("%w: please provide a user ID", ErrValidation)
	ErrMissingEmail  = fmt.Errorf("%w: please provide an email", ErrValidation)
	ErrMissingMobile = fmt.Errorf("%w: please provide a mobile number", ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: status must be 0 or 1", ErrValidation)
)
