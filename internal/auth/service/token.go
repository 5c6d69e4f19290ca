package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nbarsukov/authd/internal/common/clock"
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// JWTIssuer signs compact HS256 tokens binding a user id. Tokens carry only
// sub, iat and exp; nothing in this service verifies them.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewJWTIssuer(secret string, ttl time.Duration, clk clock.Clock) *JWTIssuer {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := i.clock.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(i.ttl).Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}
