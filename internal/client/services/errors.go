package services

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/client/client"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
)

// LoginError is a failed login. Message is safe to show to the user.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	if e.Err == nil {
		return "login failed: " + e.Message
	}
	return "login failed: " + e.Message + ": " + e.Err.Error()
}

func (e *LoginError) Unwrap() error { return e.Err }

// RegisterError is a failed registration. Message is safe to show to the user.
type RegisterError struct {
	Message string
	Err     error
}

func (e *RegisterError) Error() string {
	if e.Err == nil {
		return "registration failed: " + e.Message
	}
	return "registration failed: " + e.Message + ": " + e.Err.Error()
}

func (e *RegisterError) Unwrap() error { return e.Err }

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == common.ErrValidation }

const (
	msgInvalidCredentials = "Invalid email or password."
	msgUnavailable        = "Server is unavailable. Please try again later."
	msgInvalidCredential  = "The server returned an invalid credential."
	msgSuperseded         = "A newer login attempt replaced this one."
	msgStorage            = "Could not save the session. Please try again."
	msgLoginFailed        = "Login failed. Please try again."
	msgAccountExists      = "An account with this email already exists."
	msgRegisterFailed     = "Registration failed. Please try again."
)

func loginMessage(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, common.ErrUnauthorized):
		return msgInvalidCredentials
	case errors.Is(err, common.ErrUnavailable):
		return msgUnavailable
	case errors.Is(err, common.ErrDecode):
		return msgInvalidCredential
	case errors.Is(err, common.ErrSuperseded):
		return msgSuperseded
	}
	if se, ok := client.AsStatus(err); ok && se.Message != "" {
		return se.Message
	}
	return msgLoginFailed
}

func registerMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if errors.Is(err, common.ErrUnavailable) {
		return msgUnavailable
	}
	if se, ok := client.AsStatus(err); ok {
		if se.Message != "" {
			return se.Message
		}
		if se.Status == http.StatusConflict {
			return msgAccountExists
		}
	}
	return msgRegisterFailed
}
