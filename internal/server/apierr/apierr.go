// Package apierr maps service errors onto transport statuses. HTTP and gRPC
// handlers both go through it so the two APIs fail the same way.
package apierr

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"google.golang.org/grpc/codes"
)

// InternalMessage replaces the text of unclassified errors.
const InternalMessage = "internal server error"

type class struct {
	target error
	status int
	code   codes.Code
}

var classes = []class{
	{common.ErrValidation, http.StatusBadRequest, codes.InvalidArgument},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, codes.Unauthenticated},
	{common.ErrInvalidToken, http.StatusUnauthorized, codes.Unauthenticated},
	{common.ErrTokenExpired, http.StatusUnauthorized, codes.Unauthenticated},
	{common.ErrUnauthorized, http.StatusUnauthorized, codes.Unauthenticated},
	{common.ErrForbidden, http.StatusForbidden, codes.PermissionDenied},
	{common.ErrNotFound, http.StatusNotFound, codes.NotFound},
	{common.ErrAlreadyExists, http.StatusConflict, codes.AlreadyExists},
}

func classify(err error) (class, bool) {
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return c, true
		}
	}
	return class{}, false
}

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	if c, ok := classify(err); ok {
		return c.status
	}
	return http.StatusInternalServerError
}

// Code returns the gRPC status code for err.
func Code(err error) codes.Code {
	if c, ok := classify(err); ok {
		return c.code
	}
	return codes.Internal
}

// Message returns the text sent to the client. Unclassified errors are not
// exposed.
func Message(err error) string {
	if _, ok := classify(err); ok {
		return err.Error()
	}
	return InternalMessage
}
