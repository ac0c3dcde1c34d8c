package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
)

// StatusError is a failed call. Status is HTTP-style; 0 means the request
// never produced a response.
type StatusError struct {
	Op         Op
	Status     int
	StatusText string
	// Message is the server-provided error message, if any.
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: no response: %s", e.Op, msg)
	}
	return fmt.Sprintf("%s: status %d %s: %s", e.Op, e.Status, e.StatusText, msg)
}

func (e *StatusError) Unwrap() []error {
	errs := []error{e.class()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *StatusError) class() error {
	switch e.Status {
	case 0, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return common.ErrUnavailable
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	default:
		return common.ErrRequestFailed
	}
}

// AsStatus extracts a *StatusError from err.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func newStatusError(op Op, status int, message string, cause error) *StatusError {
	return &StatusError{
		Op:         op,
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
		Err:        cause,
	}
}
