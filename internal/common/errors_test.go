package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrDecode, ErrInvalidToken, ErrTokenExpired,
		ErrUnauthorized, ErrForbidden, ErrRequestFailed, ErrUnavailable,
		ErrValidation, ErrSuperseded,
		ErrNotFound, ErrAlreadyExists, ErrInvalidCredentials,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("login: %w", fmt.Errorf("%w: missing role claim", ErrDecode))
	require.ErrorIs(t, err, ErrDecode)
}
