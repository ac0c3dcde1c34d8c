// Package identity turns a bearer credential into a models.Identity.
//
// Two strategies exist and exactly one is active per process:
//
//   - StrategyJWT extracts "sub" and "role" claims from a JWT without
//     verifying its signature (the backend verifies it on every call).
//   - StrategyCached never fails: it uses the identity returned with the
//     credential, else the cached record, else a default USER identity.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
)

type Strategy string

const (
	StrategyJWT    Strategy = "jwt"
	StrategyCached Strategy = "cached"
)

// Decoder resolves the identity behind token. issued is the identity the
// backend returned alongside the token, if any; bootstrap passes nil.
type Decoder interface {
	Decode(ctx context.Context, token string, issued *models.Identity) (models.Identity, error)
	Strategy() Strategy
}

// UserCache is the read side of the credential store used by the cached strategy.
type UserCache interface {
	GetUser(ctx context.Context) (*models.Identity, error)
}

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyJWT:
		return StrategyJWT, nil
	case StrategyCached:
		return StrategyCached, nil
	default:
		return "", fmt.Errorf("unknown decoder strategy %q", s)
	}
}

// New builds the decoder for strategy.
func New(strategy Strategy, cache UserCache, logger logging.Logger) (Decoder, error) {
	switch strategy {
	case StrategyJWT:
		return NewJWTDecoder(), nil
	case StrategyCached:
		return NewCachedDecoder(cache, logger), nil
	default:
		return nil, fmt.Errorf("unknown decoder strategy %q", strategy)
	}
}
