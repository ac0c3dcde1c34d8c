// Package common defines shared constants and sentinel errors used across
// client and backend server layers of StaffKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Credential errors.
	ErrDecode       = errors.New("credential decode error")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Request outcome classes. Every failed network call unwraps to exactly one of them.
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrRequestFailed = errors.New("request failed")
	ErrUnavailable   = errors.New("server unavailable")

	// Authentication flow errors.
	ErrValidation = errors.New("validation error")
	ErrSuperseded = errors.New("superseded by a newer login attempt")

	// Backend errors.
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
