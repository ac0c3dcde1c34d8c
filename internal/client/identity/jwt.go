package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// JWTDecoder reads identity claims from an unverified JWT.
type JWTDecoder struct {
	parser *jwt.Parser
}

func NewJWTDecoder() *JWTDecoder {
	return &JWTDecoder{parser: jwt.NewParser(jwt.WithJSONNumber())}
}

func (d *JWTDecoder) Strategy() Strategy { return StrategyJWT }

// Decode ignores issued: the token's claims are authoritative.
func (d *JWTDecoder) Decode(_ context.Context, token string, _ *models.Identity) (models.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	sub, err := subjectID(claims["sub"])
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	raw, ok := claims["role"].(string)
	if !ok {
		return models.Identity{}, fmt.Errorf("%w: missing role claim", common.ErrDecode)
	}
	role, err := models.ParseRole(raw)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	return models.Identity{SubjectID: sub, Role: role}, nil
}

func subjectID(v any) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, errors.New("missing sub claim")
	case string:
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("sub claim %q is not numeric", s)
		}
		return id, nil
	case json.Number:
		id, err := s.Int64()
		if err != nil {
			return 0, fmt.Errorf("sub claim %q is not an integer", s.String())
		}
		return id, nil
	case float64:
		if s != math.Trunc(s) {
			return 0, fmt.Errorf("sub claim %v is not an integer", s)
		}
		return int64(s), nil
	default:
		return 0, fmt.Errorf("sub claim has unsupported type %T", v)
	}
}
