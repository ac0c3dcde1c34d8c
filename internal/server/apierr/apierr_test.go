package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   codes.Code
	}{
		{fmt.Errorf("%w: email is required", common.ErrValidation), http.StatusBadRequest, codes.InvalidArgument},
		{common.ErrInvalidCredentials, http.StatusUnauthorized, codes.Unauthenticated},
		{fmt.Errorf("%w: bad sig", common.ErrInvalidToken), http.StatusUnauthorized, codes.Unauthenticated},
		{common.ErrTokenExpired, http.StatusUnauthorized, codes.Unauthenticated},
		{common.ErrUnauthorized, http.StatusUnauthorized, codes.Unauthenticated},
		{common.ErrForbidden, http.StatusForbidden, codes.PermissionDenied},
		{fmt.Errorf("error deleting employee 3: %w", common.ErrNotFound), http.StatusNotFound, codes.NotFound},
		{common.ErrAlreadyExists, http.StatusConflict, codes.AlreadyExists},
		{errors.New("db error: connection reset"), http.StatusInternalServerError, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestMessage_HidesInternalErrors(t *testing.T) {
	assert.Equal(t, InternalMessage, Message(errors.New("db error: password=hunter2")))
	assert.Equal(t, "not found", Message(common.ErrNotFound))
}
