// Package auth issues and verifies the HS256 bearer tokens of the server and
// carries the authenticated identity through request contexts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the registered claims plus the subject's role. The subject id
// travels in "sub" as a decimal string.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func GenerateToken(id wire.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.SubjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			ID:        uuid.NewString(),
		},
		Role: string(id.Role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its identity. Expired tokens
// yield common.ErrTokenExpired, anything else invalid common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (wire.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return wire.Identity{}, common.ErrTokenExpired
		}
		return wire.Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return wire.Identity{}, common.ErrInvalidToken
	}

	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return wire.Identity{}, fmt.Errorf("%w: subject %q", common.ErrInvalidToken, claims.Subject)
	}
	role, err := wire.ParseRole(claims.Role)
	if err != nil {
		return wire.Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	return wire.Identity{SubjectID: sub, Role: role}, nil
}

type ctxKey string

const identityKey ctxKey = "identity"

func WithIdentity(ctx context.Context, id wire.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the authenticated identity stored in ctx.
func IdentityFrom(ctx context.Context) (wire.Identity, bool) {
	id, ok := ctx.Value(identityKey).(wire.Identity)
	return id, ok
}
