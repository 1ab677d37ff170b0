// Package auth issues and verifies the signed bearer tokens that gate
// access to protected endpoints. Tokens are HS256 JWTs carrying the user ID;
// they are stateless and never stored server-side.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Claims is the token payload: the standard registered claims (issued-at,
// expiry) plus the user ID as a custom claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Issuer mints and verifies bearer tokens. The signing secret and token
// lifetime are fixed at construction and never change afterwards, so a
// single Issuer is safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue creates a signed token for userID, valid from now until now+TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the token's signature and expiry and returns the user ID
// it was issued for. Expired tokens yield common.ErrTokenExpired; anything
// else wrong with the token (bad signature, malformed, wrong algorithm)
// yields common.ErrInvalidToken. The distinction is for callers' internal
// use only; request gating must map both to the same unauthenticated
// response.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
